// Package catalog persists extracted records as CSV tables with a fixed column order.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"github.com/vmunix/mkvcat/pkg/release"
)

// ErrMalformed indicates an existing table could not be parsed.
var ErrMalformed = errors.New("malformed table")

// Row is one line of the catalog or duplicates table.
// Tags follow release.Columns.
type Row struct {
	Title     string `csv:"Movie Name"`
	Year      string `csv:"Year"`
	Format    string `csv:"Format"`
	Encoding  string `csv:"Encoding"`
	Languages string `csv:"Languages"`
	Audio     string `csv:"Audio Format"`
	Season    string `csv:"Season"`
	Episode   string `csv:"Episode"`
	Size      string `csv:"Size"`
}

// FromRecord converts an extracted record to a table row.
func FromRecord(r release.Record) Row {
	return Row(r)
}

// FromRecords converts records in order.
func FromRecords(rs []release.Record) []Row {
	rows := make([]Row, len(rs))
	for i, r := range rs {
		rows[i] = FromRecord(r)
	}
	return rows
}

// Record converts the row back to a release.Record.
func (r Row) Record() release.Record {
	return release.Record(r)
}

// Records converts rows in order.
func Records(rows []Row) []release.Record {
	rs := make([]release.Record, len(rows))
	for i, r := range rows {
		rs[i] = r.Record()
	}
	return rs
}

// Merge appends added to existing, dropping any row identical in every
// column to one already kept. The first occurrence wins.
func Merge(existing, added []Row) []Row {
	seen := make(map[Row]bool, len(existing)+len(added))
	out := make([]Row, 0, len(existing)+len(added))
	for _, rows := range [][]Row{existing, added} {
		for _, r := range rows {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Store reads and writes tables on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore creates a store backed by fsys.
func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Load reads the table at path. A missing or empty file yields no rows.
func (s *Store) Load(path string) ([]Row, error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}
	return rows, nil
}

// Save replaces the table at path with rows. The header is written even
// when rows is empty. Parent directories are created as needed.
func (s *Store) Save(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	if rows == nil {
		rows = []Row{}
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
