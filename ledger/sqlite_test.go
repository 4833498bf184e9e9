package ledger

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteBackend, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	b, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	b, path := newTestSQLite(t)
	require.NoError(t, b.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','ledger_header')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["ledger_header"])
}

func TestSQLiteEmpty(t *testing.T) {
	t.Parallel()

	b, _ := newTestSQLite(t)
	header, rows, err := b.ReadAllRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Empty(t, rows)
}

func TestSQLiteAppendKeepsEntryOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b, _ := newTestSQLite(t)
	s := NewStore(b, Schema{})

	// back-dated entries must still come back in entry order
	require.NoError(t, s.Append(ctx, trade("2024-03-01", "100", "100")))
	require.NoError(t, s.Append(ctx, trade("2024-01-01", "50", "150")))
	require.NoError(t, s.Append(ctx, trade("2024-02-01", "-25", "125")))

	l, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, l, 3)
	assert.Equal(t, "03/01/24", l[0].DateString())
	assert.Equal(t, "01/01/24", l[1].DateString())
	assert.Equal(t, "02/01/24", l[2].DateString())
	assertDecimal(t, "125", l[2].AccountValue)
}

func TestSQLiteReplaceAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b, _ := newTestSQLite(t)
	s := NewStore(b, Schema{IncludeValue: true})

	require.NoError(t, s.Append(ctx, trade("2024-01-10", "500", "500")))
	require.NoError(t, s.ReplaceAll(ctx, Ledger{
		trade("2024-01-10", "100", "100"),
		trade("2024-02-05", "-200", "-100"),
	}))

	l, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, l, 2)
	assertDecimal(t, "-100", l[1].AccountValue)

	require.NoError(t, s.Clear(ctx))
	header, rows, err := b.ReadAllRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, Schema{IncludeValue: true}.Header(), header)
	assert.Empty(t, rows)

	l, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, l)
}

func TestSQLiteDecimalsExact(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b, _ := newTestSQLite(t)
	s := NewStore(b, Schema{})
	require.NoError(t, s.Append(ctx, trade("2024-01-10", "0.1", "0.1")))
	require.NoError(t, s.Append(ctx, trade("2024-01-11", "0.2", "0.3")))

	l, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.3", l[1].AccountValue.String())
}

func TestSQLiteMissingColumnIsSchemaError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b, path := newTestSQLite(t)
	s := NewStore(b, Schema{})
	require.NoError(t, s.Append(ctx, trade("2024-01-10", "500", "500")))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`ALTER TABLE trades DROP COLUMN notes`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrSchema)
}
