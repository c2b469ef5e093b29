package gtfsroutes

import (
	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqlitex"
	"fmt"
	"log/slog"
)

// dbSource reads tables from a database written by gtfs2sqlite, which stores every
// column as TEXT and empty values as NULL.
type dbSource struct {
	db *sqlite.Conn
}

func (s dbSource) readTable(name string) (*table, error) {
	var count int64
	err := sqlitex.Exec(s.db, "SELECT count(*) AS count FROM sqlite_master WHERE type = 'table' AND name = ?",
		func(stmt *sqlite.Stmt) error {
			count = stmt.GetInt64("count")
			return nil
		}, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, name, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: table %s not found in database", ErrFile, name)
	}

	stmt, _, err := s.db.PrepareTransient(fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, name, err)
	}
	defer func() { _ = stmt.Finalize() }()

	t := &table{name: name}
	for i := range stmt.ColumnCount() {
		t.header = append(t.header, stmt.ColumnName(i))
	}

	for {
		rowReturned, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFile, name, err)
		}
		if !rowReturned {
			break
		}

		row := make([]string, len(t.header))
		for i := range row {
			row[i] = stmt.ColumnText(i) // NULL reads as ""
		}
		t.rows = append(t.rows, row)
	}
	slog.Info(fmt.Sprintf("Read %d rows from table %s", len(t.rows), name))

	return t, nil
}

func (s dbSource) Close() error { return s.db.Close() }
