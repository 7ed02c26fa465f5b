// Package sqlite keeps layouts in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	nt "gridkit/entity"
	"gridkit/store/sqldb"
)

// Sqlite is a store.Backend on SQLite.
type Sqlite struct {
	*sqldb.SqlDb
}

// New opens the SQLite database at path, creating it if needed.
func New(ctx context.Context, path string, lgr nt.Logger) (sl *Sqlite, err error) {

	db, err := sql.Open("sqlite", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open sqlite at %q", path)
		return
	}
	// one writer keeps commits ordered
	db.SetMaxOpenConns(1)

	sdb, err := sqldb.New(ctx, db, lgr)
	if err != nil {
		db.Close()
		return
	}

	sl = &Sqlite{SqlDb: sdb}
	return
}
