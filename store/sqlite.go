package store

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	papertrade "github.com/etnz/papertrade"
	_ "github.com/glebarez/go-sqlite"
)

// SQLite persists portfolios in a single SQLite database, one row per user.
// The portfolio document is stored as JSON so the schema never needs to
// track ledger fields.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS portfolios (
			user_id TEXT PRIMARY KEY,
			document TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create portfolios table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(userID string) (*papertrade.Portfolio, bool, error) {
	var document string
	err := s.db.QueryRow("SELECT document FROM portfolios WHERE user_id = ?", userID).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query portfolio for %q: %w", userID, err)
	}
	p, err := papertrade.DecodePortfolio(strings.NewReader(document))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode portfolio for %q: %w", userID, err)
	}
	return p, true, nil
}

func (s *SQLite) Save(userID string, p *papertrade.Portfolio) error {
	var buf bytes.Buffer
	if err := papertrade.EncodePortfolio(&buf, p); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO portfolios (user_id, document) VALUES (?, ?) ON CONFLICT(user_id) DO UPDATE SET document=excluded.document",
		userID, buf.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio for %q: %w", userID, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
