// Package sqldb persists layout records in a SQL table, one JSON document per table name.
// It is shared by the DuckDB and SQLite backends.
package sqldb

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/store"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS layouts (
		name VARCHAR PRIMARY KEY,
		record VARCHAR NOT NULL
	)`

// SqlDb is a store.Backend over database/sql.
type SqlDb struct {
	db     *sql.DB
	logger nt.Logger
}

// New creates the layouts table when missing.
func New(ctx context.Context, db *sql.DB, lgr nt.Logger) (sdb *SqlDb, err error) {

	_, err = db.ExecContext(ctx, createTable)
	if err != nil {
		err = errors.Wrapf(err, "failed to create layouts table")
		return
	}

	sdb = &SqlDb{
		db:     db,
		logger: lgr,
	}
	return
}

// Close closes the underlying db.
func (sdb *SqlDb) Close() error {
	return sdb.db.Close()
}

// Load returns every record, logging and skipping any that fail to decode.
func (sdb *SqlDb) Load(ctx context.Context) (records map[string]store.Record, err error) {

	rows, err := sdb.db.QueryContext(ctx, "SELECT name, record FROM layouts")
	if err != nil {
		err = errors.Wrapf(err, "failed to query layouts")
		return
	}
	defer rows.Close()

	records = map[string]store.Record{}
	for rows.Next() {
		var name, data string
		if err = rows.Scan(&name, &data); err != nil {
			err = errors.Wrapf(err, "failed to scan layout")
			return
		}

		var record store.Record
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			err = errors.Wrapf(nt.ErrCorruptState, "undecodable record for %q: %s", name, err)
			sdb.logger.Error(ctx, "skipping persisted layout", err, "table", name)
			continue
		}
		records[name] = record
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating layouts")
	return
}

// Save replaces the record for name.
func (sdb *SqlDb) Save(ctx context.Context, name string, record store.Record) (err error) {

	data, err := json.Marshal(record)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal layout for %q", name)
		return
	}

	_, err = sdb.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO layouts (name, record) VALUES (?, ?)",
		name, string(data))
	err = errors.Wrapf(err, "failed to save layout for %q", name)
	return
}

// Delete removes the record for name.
func (sdb *SqlDb) Delete(ctx context.Context, name string) (err error) {

	_, err = sdb.db.ExecContext(ctx, "DELETE FROM layouts WHERE name = ?", name)
	err = errors.Wrapf(err, "failed to delete layout for %q", name)
	return
}
