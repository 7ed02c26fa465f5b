package store

import (
	"context"
	"maps"
	"sync"
)

// Memory is a Backend held in process, for tests and ephemeral tables.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
	Saves   int
}

// NewMemory creates a Memory backend seeded with records.
func NewMemory(records map[string]Record) *Memory {

	if records == nil {
		records = map[string]Record{}
	}
	return &Memory{records: maps.Clone(records)}
}

func (mem *Memory) Load(ctx context.Context) (records map[string]Record, err error) {

	mem.mu.Lock()
	defer mem.mu.Unlock()

	records = map[string]Record{}
	for name, record := range mem.records {
		record.Layout = record.Layout.Clone()
		records[name] = record
	}
	return
}

func (mem *Memory) Save(ctx context.Context, name string, record Record) (err error) {

	mem.mu.Lock()
	defer mem.mu.Unlock()

	record.Layout = record.Layout.Clone()
	mem.records[name] = record
	mem.Saves++
	return
}

func (mem *Memory) Delete(ctx context.Context, name string) (err error) {

	mem.mu.Lock()
	defer mem.mu.Unlock()

	delete(mem.records, name)
	return
}

// Record returns the stored record for name.
func (mem *Memory) Record(name string) (record Record, ok bool) {

	mem.mu.Lock()
	defer mem.mu.Unlock()

	record, ok = mem.records[name]
	return
}
