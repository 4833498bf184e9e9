package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradetracker/pkg/id"
)

// SQLiteSchema creates the trade table and the header table. Amounts are
// stored as text so decimals survive unchanged.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	position TEXT NOT NULL,
	type TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '0',
	pl TEXT NOT NULL,
	notes TEXT NOT NULL,
	account_value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger_header (
	pos INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
`

// sqlColumns maps ledger columns to trade table columns.
var sqlColumns = map[string]string{
	ColDate:         "date",
	ColPosition:     "position",
	ColType:         "type",
	ColValue:        "value",
	ColPL:           "pl",
	ColNotes:        "notes",
	ColAccountValue: "account_value",
}

// SQLiteBackend keeps the ledger in a SQLite database. Rows are keyed by
// ULID so ordering by id is entry order.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the database at path.
func NewSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(SQLiteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) ReadAllRows(ctx context.Context) ([]string, []Row, error) {
	present, err := b.tableColumns(ctx)
	if err != nil {
		return nil, nil, err
	}
	header, err := b.header(ctx)
	if err != nil {
		return nil, nil, err
	}

	var count int
	if err := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count); err != nil {
		return nil, nil, err
	}
	if len(header) == 0 {
		if count == 0 {
			return nil, nil, nil
		}
		header = Schema{IncludeValue: true}.Header()
	}

	// Columns dropped from the table also drop out of the header, which
	// makes the store report a schema error.
	var cols []string
	var selected []string
	for _, h := range header {
		if c, ok := sqlColumns[h]; ok && present[c] {
			cols = append(cols, h)
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return cols, nil, nil
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT `+strings.Join(selected, ", ")+` FROM trades ORDER BY id ASC`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		vals := make([]string, len(selected))
		ptrs := make([]any, len(selected))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		out = append(out, rowFromValues(cols, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

func (b *SQLiteBackend) WriteHeaderAndRows(ctx context.Context, header []string, rows []Row) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return err
	}
	if err := writeHeader(ctx, tx, header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := insertRow(ctx, tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) AppendRow(ctx context.Context, header []string, row Row) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_header`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if err := writeHeader(ctx, tx, header); err != nil {
			return err
		}
	}
	if err := insertRow(ctx, tx, row); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) header(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT name FROM ledger_header ORDER BY pos ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		header = append(header, name)
	}
	return header, rows.Err()
}

func (b *SQLiteBackend) tableColumns(ctx context.Context) (map[string]bool, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('trades')`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		present[name] = true
	}
	return present, rows.Err()
}

func writeHeader(ctx context.Context, tx *sql.Tx, header []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_header`); err != nil {
		return err
	}
	for i, h := range header {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ledger_header (pos, name) VALUES (?, ?)`, i, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

func insertRow(ctx context.Context, tx *sql.Tx, r Row) error {
	value := r[ColValue]
	if value == "" {
		value = "0"
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO trades
		(id, date, position, type, value, pl, notes, account_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), r[ColDate], r[ColPosition], r[ColType], value,
		r[ColPL], r[ColNotes], r[ColAccountValue],
	)
	return err
}
