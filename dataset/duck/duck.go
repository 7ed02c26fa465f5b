// Package duck serves rows from a newline delimited json file loaded into DuckDB.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "gridkit/entity"
)

// Duck is an in-memory DuckDB holding one table of records.
type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string
}

// New opens an empty in-memory duck.
func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}
	return
}

// Close releases the database.
func (dk *Duck) Close() {
	dk.db.Close()
}

// Load reads records from a newline delimited json file, inferring columns.
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	create := fmt.Sprintf(`
		CREATE OR REPLACE TABLE records AS
		SELECT *
		FROM read_json_auto('%s',
			format='newline_delimited',
			maximum_object_size=16777216)
	`, strings.ReplaceAll(path, "'", "''"))

	_, err = dk.db.ExecContext(ctx, create)
	if err != nil {
		err = errors.Wrapf(err, "failed to load records from %s", path)
		return
	}

	dk.filename = filepath.Base(path)

	count, err := dk.Count(ctx)
	if err != nil {
		return
	}
	dk.logger.Info(ctx, "loaded records", "file", path, "count", count)
	return
}

// Name returns the name of the loaded file.
func (dk *Duck) Name() string {
	return dk.filename
}

// Fields returns the loaded column names in file order.
func (dk *Duck) Fields(ctx context.Context) (fields []string, err error) {

	rows, err := dk.db.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'records'
		ORDER BY ordinal_position
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var field string
		if err = rows.Scan(&field); err != nil {
			err = errors.Wrapf(err, "failed to scan field")
			return
		}
		fields = append(fields, field)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating fields")
	return
}

// Count returns the number of records.
func (dk *Duck) Count(ctx context.Context) (count int, err error) {

	err = dk.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	err = errors.Wrapf(err, "failed to count records")
	return
}

// Page returns up to size records from offset, keyed by column name.
func (dk *Duck) Page(ctx context.Context, offset, size int) (page []nt.Row, err error) {

	rows, err := dk.db.QueryContext(ctx, "SELECT * FROM records LIMIT ? OFFSET ?", size, offset)
	if err != nil {
		err = errors.Wrapf(err, "failed to query records")
		return
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	page = []nt.Row{}
	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(cols))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		row := nt.Row{}
		for i, col := range cols {
			row[col] = vals[i]
		}
		page = append(page, row)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// unexported

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}
