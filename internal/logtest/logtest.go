// Package logtest provides a recording logger for tests.
package logtest

import (
	"context"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Msg string
	Err error
	Kv  []any
}

// Recorder implements entity.Logger, keeping every call.
type Recorder struct {
	mu     sync.Mutex
	Infos  []Entry
	Errors []Entry
}

func (rec *Recorder) Info(ctx context.Context, msg string, kv ...any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.Infos = append(rec.Infos, Entry{Msg: msg, Kv: kv})
}

func (rec *Recorder) Error(ctx context.Context, msg string, err error, kv ...any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.Errors = append(rec.Errors, Entry{Msg: msg, Err: err, Kv: kv})
}

// ErrorCount returns the number of Error calls.
func (rec *Recorder) ErrorCount() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.Errors)
}
