package investlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source supplies records to the engine: a ledger file, a database, or the
// sample data.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Appender is a Source that can store a new record.
type Appender interface {
	Source
	Append(ctx context.Context, r Record) error
}

// LoadLedger reads every record of src and validates them into a Ledger.
func LoadLedger(ctx context.Context, src Source, currency string) (*Ledger, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}
	l, err := NewLedger(currency, records...)
	if err != nil {
		return nil, fmt.Errorf("invalid records: %w", err)
	}
	return l, nil
}

// SampleSource serves the demonstration records.
type SampleSource struct{}

func (SampleSource) Records(context.Context) ([]Record, error) { return SampleRecords(), nil }

// FileSource is a JSONL ledger file. A missing file is an empty ledger.
type FileSource struct {
	Path     string
	Currency string // for lines without currency
}

func (s FileSource) Records(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.Path, err)
	}
	defer f.Close()
	return DecodeRecords(f, s.Path, s.Currency)
}

// Append adds r at the end of the file.
func (s FileSource) Append(ctx context.Context, r Record) error {
	line, err := EncodeRecord(r)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", s.Path, err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("could not write to %q: %w", s.Path, err)
	}
	return f.Close()
}

// Rewrite replaces the file content with records, in the given order.
func (s FileSource) Rewrite(records []Record) error {
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", tmp, err)
	}
	if err := EncodeRecords(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
