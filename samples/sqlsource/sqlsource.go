/*
Package sqlsource provides a samples.Source reading samples from a table
of an SQL database, either an SQLite3 file or a PostgreSQL database.
*/
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbanos/arbor/samples"
)

// DefaultTable is the table samples are read from by default.
const DefaultTable = "samples"

type source struct {
	db    *sql.DB
	query string
	cols  samples.Columns
}

/*
Open takes the name of a database/sql driver, a data source name, the
table holding the samples and the columns to read and returns a
samples.Source over the table or an error. Every feature column must
hold numeric values and the label column, if any, integers.
*/
func Open(driver, dsn, table string, cols samples.Columns) (samples.Source, error) {
	query, err := selectQuery(table, cols)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return &source{db: db, query: query, cols: cols}, nil
}

// OpenSQLite3 returns a source over a table of the SQLite3 database file
// at the given path.
func OpenSQLite3(path, table string, cols samples.Columns) (samples.Source, error) {
	return Open("sqlite3", path, table, cols)
}

// OpenPostgreSQL returns a source over a table of the PostgreSQL database
// at the given connection URL.
func OpenPostgreSQL(url, table string, cols samples.Columns) (samples.Source, error) {
	return Open("postgres", url, table, cols)
}

func quote(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty column or table name")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}

func selectQuery(table string, cols samples.Columns) (string, error) {
	names := append([]string(nil), cols.Features...)
	if cols.Label != "" {
		names = append(names, cols.Label)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no columns to read")
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		q, err := quote(n)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	t, err := quote(table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), t), nil
}

func (s *source) Read(ctx context.Context) (<-chan samples.Sample, <-chan error) {
	var rows *sql.Rows
	values := make([]sql.NullFloat64, len(s.cols.Features))
	var label sql.NullInt64
	dest := make([]interface{}, 0, len(values)+1)
	for i := range values {
		dest = append(dest, &values[i])
	}
	if s.cols.Label != "" {
		dest = append(dest, &label)
	}
	var n int
	return samples.Stream(ctx, func() (samples.Sample, bool, error) {
		if rows == nil {
			var err error
			rows, err = s.db.QueryContext(ctx, s.query)
			if err != nil {
				return samples.Sample{}, false, fmt.Errorf("querying samples: %v", err)
			}
		}
		if !rows.Next() {
			err := rows.Err()
			rows.Close()
			if err != nil {
				return samples.Sample{}, false, fmt.Errorf("reading samples: %v", err)
			}
			return samples.Sample{}, false, nil
		}
		n++
		if err := rows.Scan(dest...); err != nil {
			rows.Close()
			return samples.Sample{}, false, fmt.Errorf("scanning sample %d: %v", n, err)
		}
		sample := samples.Sample{Values: make([]float64, len(values))}
		for i, v := range values {
			if !v.Valid {
				rows.Close()
				return samples.Sample{}, false, fmt.Errorf("sample %d has no value for %q", n, s.cols.Features[i])
			}
			sample.Values[i] = v.Float64
		}
		if s.cols.Label != "" {
			if !label.Valid {
				rows.Close()
				return samples.Sample{}, false, fmt.Errorf("sample %d has no label", n)
			}
			sample.Label = int(label.Int64)
			sample.HasLabel = true
		}
		return sample, true, nil
	})
}

func (s *source) Close() error {
	return s.db.Close()
}
