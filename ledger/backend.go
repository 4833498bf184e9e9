package ledger

import "context"

// Backend is the persistence collaborator behind a Store: a flat file, a
// database table, or anything else that can hold a header and rows.
type Backend interface {
	// ReadAllRows returns the stored header and rows in stored order. A
	// store that was never written returns an empty header and no rows.
	ReadAllRows(ctx context.Context) (header []string, rows []Row, err error)

	// WriteHeaderAndRows replaces the whole content, all or nothing.
	WriteHeaderAndRows(ctx context.Context, header []string, rows []Row) error

	// AppendRow adds one row after the last. header is used only when the
	// store has none yet; otherwise the stored header wins.
	AppendRow(ctx context.Context, header []string, row Row) error

	Close() error
}
