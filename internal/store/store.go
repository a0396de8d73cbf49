package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound signals a missing session, document or highlight. Callers
// check it with errors.Is; it is never wrapped into a 500.
var ErrNotFound = errors.New("not found")

// Store owns the sqlite database holding recorded sessions.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the sqlite database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := Migrate(db, "up", 0); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// isoFormat is a fixed-width UTC timestamp, so lexical order in ORDER BY
// matches chronological order.
const isoFormat = "2006-01-02T15:04:05.000000000Z07:00"

func nowISO() string {
	return time.Now().UTC().Format(isoFormat)
}

// NowISO returns the current time in the store's timestamp format, for
// callers that stamp server time into payloads.
func NowISO() string { return nowISO() }

// DocumentID derives the deterministic document identity from
// (session id, url): a v5 UUID in the URL namespace, stable across processes.
func DocumentID(sessionID, url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sessionID+":"+url)).String()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
