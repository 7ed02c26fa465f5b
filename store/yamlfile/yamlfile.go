// Package yamlfile keeps every table's layout in a single yaml document.
package yamlfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "gridkit/entity"
	"gridkit/store"
)

// YamlFile is a store.Backend on a yaml file.
// The whole document is rewritten on each save, via rename so a crash never leaves it half written.
type YamlFile struct {
	Path string
	Mode os.FileMode

	logger  nt.Logger
	mu      sync.Mutex
	records map[string]store.Record
}

// New creates a YamlFile backend at path.
func New(path string, lgr nt.Logger) *YamlFile {
	return &YamlFile{
		Path:    path,
		Mode:    0644,
		logger:  lgr,
		records: map[string]store.Record{},
	}
}

// Load reads the document; a missing file is an empty store.
// Entries that do not decode are logged and skipped.
func (yf *YamlFile) Load(ctx context.Context) (records map[string]store.Record, err error) {

	yf.mu.Lock()
	defer yf.mu.Unlock()

	records = map[string]store.Record{}

	data, err := os.ReadFile(yf.Path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", yf.Path)
		return
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		err = errors.Wrapf(nt.ErrCorruptState, "undecodable layouts in %s: %s", yf.Path, err)
		yf.logger.Error(ctx, "ignoring persisted layouts", err)
		return records, nil
	}

	for name, node := range doc {
		var record store.Record
		if err := node.Decode(&record); err != nil {
			err = errors.Wrapf(nt.ErrCorruptState, "undecodable record for %q: %s", name, err)
			yf.logger.Error(ctx, "skipping persisted layout", err, "table", name)
			continue
		}
		records[name] = record
		yf.records[name] = record
	}
	return
}

// Save replaces the record for name and rewrites the document.
func (yf *YamlFile) Save(ctx context.Context, name string, record store.Record) (err error) {

	yf.mu.Lock()
	defer yf.mu.Unlock()

	yf.records[name] = record
	err = yf.write()
	return
}

// Delete removes the record for name and rewrites the document.
func (yf *YamlFile) Delete(ctx context.Context, name string) (err error) {

	yf.mu.Lock()
	defer yf.mu.Unlock()

	delete(yf.records, name)
	err = yf.write()
	return
}

// unexported

func (yf *YamlFile) write() (err error) {

	data, err := yaml.Marshal(yf.records)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(yf.Path), filepath.Base(yf.Path)+".*")
	if err != nil {
		err = errors.Wrapf(err, "failed to create temp for %s", yf.Path)
		return
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		err = errors.Wrapf(err, "failed to write to %s", tmp.Name())
		return
	}
	err = tmp.Close()
	if err != nil {
		err = errors.Wrapf(err, "failed to close %s", tmp.Name())
		return
	}

	err = os.Chmod(tmp.Name(), yf.Mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to chmod %s", tmp.Name())
		return
	}

	err = os.Rename(tmp.Name(), yf.Path)
	err = errors.Wrapf(err, "failed to rename to %s", yf.Path)
	return
}
