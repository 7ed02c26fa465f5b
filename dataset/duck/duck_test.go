package duck

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gridkit/internal/logtest"
)

const records = `{"name":"a.txt","size":10,"owner":{"login":"ann"}}
{"name":"b.txt","size":20,"owner":{"login":"bob"}}
{"name":"c.txt","size":30,"owner":{"login":"cy"}}
`

func load(t *testing.T) *Duck {
	t.Helper()

	path := filepath.Join(t.TempDir(), "files.ndjson")
	if err := os.WriteFile(path, []byte(records), 0o644); err != nil {
		t.Fatal(err)
	}

	dk, err := New(&logtest.Recorder{})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(dk.Close)

	if err := dk.Load(context.Background(), path); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	return dk
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dk := load(t)

	if dk.Name() != "files.ndjson" {
		t.Errorf("Name() = %q", dk.Name())
	}

	count, err := dk.Count(ctx)
	if err != nil || count != 3 {
		t.Errorf("Count() = %d, %v", count, err)
	}

	fields, err := dk.Fields(ctx)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}
	if !slices.Equal(fields, []string{"name", "size", "owner"}) {
		t.Errorf("Fields() = %v", fields)
	}
}

func TestPage(t *testing.T) {
	ctx := context.Background()
	dk := load(t)

	cases := map[string]struct {
		offset int
		size   int
		names  []string
	}{
		"first page":   {0, 2, []string{"a.txt", "b.txt"}},
		"last page":    {2, 2, []string{"c.txt"}},
		"past the end": {5, 2, []string{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			page, err := dk.Page(ctx, tc.offset, tc.size)
			if err != nil {
				t.Fatalf("Page() = %v", err)
			}

			names := []string{}
			for _, row := range page {
				val, _ := row.Lookup("name")
				names = append(names, val.String())
			}
			if !slices.Equal(names, tc.names) {
				t.Errorf("names = %v, want %v", names, tc.names)
			}
		})
	}
}

func TestNestedLookup(t *testing.T) {
	dk := load(t)

	page, err := dk.Page(context.Background(), 0, 1)
	if err != nil || len(page) != 1 {
		t.Fatalf("Page() = %v, %v", page, err)
	}

	val, ok := page[0].Lookup("owner.login")
	if !ok || val.String() != "ann" {
		t.Errorf("Lookup(owner.login) = %v, %t", val.Raw, ok)
	}
}

func TestLoadMissing(t *testing.T) {

	dk, err := New(&logtest.Recorder{})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer dk.Close()

	if err := dk.Load(context.Background(), filepath.Join(t.TempDir(), "nope.ndjson")); err == nil {
		t.Errorf("Load() of a missing file succeeded")
	}
}
