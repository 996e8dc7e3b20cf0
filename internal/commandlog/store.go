// Package commandlog persists every executed command frame to SQLite so a
// game can be replayed deterministically from its journal.
package commandlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/signalyard/internal/command"
	"github.com/louisbranch/signalyard/internal/commandlog/migrations"
	"github.com/louisbranch/signalyard/internal/platform/storage/sqlitemigrate"
)

// ProtocolVersion is the wire protocol generation of the frames in a
// journal. Field lists are order-significant and unversioned on the wire, so
// a journal written under a different generation cannot be decoded and is
// refused instead of misread.
const ProtocolVersion = 1

const protocolVersionKey = "protocol_version"

// ErrProtocolMismatch reports a journal written under an incompatible wire
// protocol generation.
var ErrProtocolMismatch = errors.New("journal protocol version mismatch")

// Entry is one journaled command application.
type Entry struct {
	Seq        int64
	ID         command.ID
	Tile       command.TileIndex
	Client     command.ClientID
	Company    command.CompanyID
	Frame      []byte
	Cost       command.Money
	ResultData uint32
	AppliedAt  time.Time
}

// Store is a SQLite-backed command journal.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a journal at path, applies embedded
// migrations, and verifies the protocol version.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping journal db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run journal migrations: %w", err)
	}
	if err := checkProtocolVersion(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

func checkProtocolVersion(sqlDB *sql.DB) error {
	var value string
	err := sqlDB.QueryRow(
		`SELECT value FROM journal_meta WHERE key = ?`, protocolVersionKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = sqlDB.Exec(
			`INSERT INTO journal_meta (key, value) VALUES (?, ?)`,
			protocolVersionKey, strconv.Itoa(ProtocolVersion),
		)
		if err != nil {
			return fmt.Errorf("record protocol version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read protocol version: %w", err)
	}
	got, err := strconv.Atoi(value)
	if err != nil || got != ProtocolVersion {
		return fmt.Errorf("%w: journal has %q, this build speaks %d",
			ErrProtocolMismatch, value, ProtocolVersion)
	}
	return nil
}

// Close closes the journal handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append records one executed command and returns its sequence number.
func (s *Store) Append(ctx context.Context, e Entry) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("journal is not configured")
	}
	if len(e.Frame) == 0 {
		return 0, fmt.Errorf("frame bytes are required")
	}
	appliedAt := e.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now().UTC()
	}
	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO journal_entries (
		   command_id, tile, client_id, company_id,
		   frame, cost, result_data, applied_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(e.ID),
		int64(e.Tile),
		int64(e.Client),
		int64(e.Company),
		e.Frame,
		int64(e.Cost),
		int64(e.ResultData),
		appliedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	return seq, nil
}

// Walk visits every journal entry in sequence order. The walk stops at the
// first error returned by fn.
func (s *Store) Walk(ctx context.Context, fn func(Entry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("journal is not configured")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT seq, command_id, tile, client_id, company_id,
		        frame, cost, result_data, applied_at
		   FROM journal_entries
		  ORDER BY seq ASC`,
	)
	if err != nil {
		return fmt.Errorf("walk journal: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		var id, tile, client, company, cost, resultData, appliedAt int64
		if err := rows.Scan(
			&e.Seq, &id, &tile, &client, &company,
			&e.Frame, &cost, &resultData, &appliedAt,
		); err != nil {
			return fmt.Errorf("walk journal: %w", err)
		}
		e.ID = command.ID(id)
		e.Tile = command.TileIndex(tile)
		e.Client = command.ClientID(client)
		e.Company = command.CompanyID(company)
		e.Cost = command.Money(cost)
		e.ResultData = uint32(resultData)
		e.AppliedAt = time.UnixMilli(appliedAt).UTC()
		if err := fn(e); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("walk journal: %w", err)
	}
	return nil
}

// Len returns the number of journaled entries.
func (s *Store) Len(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("journal is not configured")
	}
	var n int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}
