// Package store keeps records in a SQLite database. Amounts are stored in
// minor units so that the database never rounds them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/investlog"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id            INTEGER PRIMARY KEY,
	date          TEXT    NOT NULL,
	asset         TEXT    NOT NULL,
	asset_type    TEXT    NOT NULL,
	tx            TEXT    NOT NULL,
	currency      TEXT    NOT NULL,
	principal     INTEGER NOT NULL,
	current_value INTEGER NOT NULL,
	profit        INTEGER NOT NULL,
	sector        TEXT    NOT NULL DEFAULT '',
	notes         TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
`

const columns = `id, date, asset, asset_type, tx, currency, principal, current_value, profit, sector, notes`

// Store is a record source backed by SQLite.
type Store struct {
	conn *sql.DB
	path string
	log  zerolog.Logger
}

var _ investlog.Appender = (*Store)(nil)

// Open opens, and creates if needed, the database at path.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &Store{
		conn: conn,
		path: path,
		log:  log.With().Str("component", "store").Logger(),
	}
	s.log.Debug().Str("path", path).Msg("database opened")
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error { return s.conn.Close() }

// Records returns every record, in id order. Stored profits are checked
// against the amounts.
func (s *Store) Records(ctx context.Context) ([]investlog.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+columns+` FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []investlog.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	s.log.Debug().Int("count", len(records)).Msg("records loaded")
	return records, nil
}

// Get returns the record with this id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (investlog.Record, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+columns+` FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return investlog.Record{}, fmt.Errorf("record #%d: %w", id, ErrNotFound)
	}
	return r, err
}

// Append inserts r. Its id must be new.
func (s *Store) Append(ctx context.Context, r investlog.Record) error {
	if err := insert(ctx, s.conn, r); err != nil {
		return err
	}
	s.log.Info().Int64("id", r.ID()).Str("asset", r.Asset()).Msg("record added")
	return nil
}

// Import inserts records in a single transaction: either all of them are
// stored or none.
func (s *Store) Import(ctx context.Context, records []investlog.Record) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		if err := insert(ctx, tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	s.log.Info().Int("count", len(records)).Msg("records imported")
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, r investlog.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `INSERT INTO records (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID(),
		r.Date().String(),
		r.Asset(),
		string(r.AssetType()),
		string(r.Type()),
		r.Currency(),
		r.Principal().Minor(),
		r.Current().Minor(),
		r.Profit().Minor(),
		string(r.Sector()),
		r.Notes(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record #%d: %w", r.ID(), err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (investlog.Record, error) {
	var (
		id                         int64
		date, asset, assetType     string
		tx, currency               string
		principal, current, profit int64
		sector, notes              string
	)
	if err := row.Scan(&id, &date, &asset, &assetType, &tx, &currency, &principal, &current, &profit, &sector, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return investlog.Record{}, err
		}
		return investlog.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	on, err := investlog.ParseDate(date)
	if err != nil {
		return investlog.Record{}, fmt.Errorf("record #%d: %w", id, err)
	}
	r := investlog.NewRecord(id, asset, investlog.AssetType(assetType), investlog.TransactionType(tx), on,
		investlog.FromMinor(principal, currency),
		investlog.FromMinor(current, currency)).
		WithSector(investlog.Sector(sector)).
		WithNotes(notes)
	if err := r.Validate(); err != nil {
		return investlog.Record{}, err
	}
	if err := r.CheckDerived(investlog.FromMinor(profit, currency), r.ProfitPercent()); err != nil {
		return investlog.Record{}, err
	}
	return r, nil
}
