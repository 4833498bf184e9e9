package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// CSVBackend keeps the ledger in a single CSV file with a header line.
// Every write produces a complete temporary file that is renamed over the
// original, so a reader sees either the old or the new ledger.
type CSVBackend struct {
	path string
	mu   sync.Mutex
}

// NewCSV returns a backend for the file at path. The file is created on
// first write.
func NewCSV(path string) *CSVBackend {
	return &CSVBackend{path: path}
}

// Path returns the backing file name.
func (b *CSVBackend) Path() string { return b.path }

func (b *CSVBackend) ReadAllRows(ctx context.Context) ([]string, []Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read()
}

func (b *CSVBackend) read() ([]string, []Row, error) {
	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", b.path, err)
		}
		rows = append(rows, rowFromValues(header, rec))
	}
	return header, rows, nil
}

func (b *CSVBackend) WriteHeaderAndRows(ctx context.Context, header []string, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write(header, rows)
}

// AppendRow rewrites the file with the extra row. CSV has no way to add a
// line that readers cannot observe half written.
func (b *CSVBackend) AppendRow(ctx context.Context, header []string, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, rows, err := b.read()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		header = existing
	}
	return b.write(header, append(rows, row))
}

func (b *CSVBackend) write(header []string, rows []Row) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Values(header)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

func (b *CSVBackend) Close() error { return nil }
