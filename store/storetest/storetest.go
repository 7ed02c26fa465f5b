// Package storetest checks a store.Backend survives a restart.
package storetest

import (
	"context"
	"io"
	"slices"
	"testing"
	"time"

	nt "gridkit/entity"
	"gridkit/store"
)

// Exercise saves, reopens, deletes and reopens again, checking what survives.
// open is called once per "process"; backends that are io.Closers are closed in between.
func Exercise(t *testing.T, open func() store.Backend) {
	t.Helper()
	ctx := context.Background()

	var backend store.Backend
	release := func() {
		if closer, ok := backend.(io.Closer); ok {
			closer.Close()
		}
	}
	reopen := func() store.Backend {
		release()
		backend = open()
		return backend
	}
	defer release()

	record := store.Record{
		Schema:  store.SchemaVersion,
		Session: "4f1c",
		Updated: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Layout: nt.Layout{
			Order:      []string{"name", "date", "actions"},
			Visibility: map[string]bool{"name": true, "date": false, "actions": true},
			Sizing:     map[string]int{"name": 150, "date": 600, "actions": 150},
		},
	}

	reopen()
	if err := backend.Save(ctx, "documents", record); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	record.Layout.Sizing["date"] = 420
	if err := backend.Save(ctx, "documents", record); err != nil {
		t.Fatalf("Save() again = %v", err)
	}
	if err := backend.Save(ctx, "inbox", record); err != nil {
		t.Fatalf("Save() inbox = %v", err)
	}

	records, err := reopen().Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Load() got %d records, want 2", len(records))
	}

	got := records["documents"]
	if !got.Layout.Equal(record.Layout) {
		t.Errorf("layout = %+v, want %+v", got.Layout, record.Layout)
	}
	if got.Schema != record.Schema || got.Session != record.Session || !got.Updated.Equal(record.Updated) {
		t.Errorf("envelope = %+v, want %+v", got, record)
	}
	if !slices.Equal(got.Layout.Hidden(), []string{"date"}) {
		t.Errorf("Hidden() = %v", got.Layout.Hidden())
	}

	reopen()
	if _, err := backend.Load(ctx); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if err := backend.Delete(ctx, "inbox"); err != nil {
		t.Fatalf("Delete() = %v", err)
	}

	records, err = reopen().Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if _, ok := records["inbox"]; ok || len(records) != 1 {
		t.Errorf("after Delete() got %v", records)
	}
}
