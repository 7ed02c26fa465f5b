// Package duck keeps layouts in a DuckDB database file.
package duck

import (
	"context"
	"database/sql"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/store/sqldb"
)

// Duck is a store.Backend on DuckDB.
type Duck struct {
	*sqldb.SqlDb
}

// New opens the DuckDB database at path, in memory when path is empty.
func New(ctx context.Context, path string, lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open duck at %q", path)
		return
	}

	sdb, err := sqldb.New(ctx, db, lgr)
	if err != nil {
		db.Close()
		return
	}

	dk = &Duck{SqlDb: sdb}
	return
}
