// Package journal records how each round ended in an SQLite database. The
// default DSN is in-memory, so nothing outlives the process.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DefaultDSN = ":memory:"
	tableName  = "round_outcomes"
)

type Entry struct {
	ID          int
	Session     string
	Round       int
	Cause       string
	Ticks       int
	FinalLength int
	CreatedAt   time.Time
}

type Journal struct {
	db *sql.DB
}

func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening journal database: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	j := &Journal{db: db}
	if err := j.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		round INTEGER NOT NULL,
		cause TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		final_length INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := j.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Round journal table ensured.")
	return nil
}

func (j *Journal) Record(ctx context.Context, session string, outcome game.RoundOutcome) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (session, round, cause, ticks, final_length, created_at)
	VALUES (?, ?, ?, ?, ?, ?);`

	_, err := j.db.ExecContext(ctx, insertSQL, session, outcome.Round, outcome.Cause.String(),
		outcome.Ticks, outcome.FinalLength, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record round %d for %s: %w", outcome.Round, session, err)
	}
	return nil
}

func (j *Journal) RoundsPlayed(ctx context.Context, session string) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + ` WHERE session = ?;`
	var count int
	if err := j.db.QueryRowContext(ctx, countSQL, session).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rounds for %s: %w", session, err)
	}
	return count, nil
}

// Recent returns the latest entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	const selectSQL = `
	SELECT id, session, round, cause, ticks, final_length, created_at
	FROM ` + tableName + `
	ORDER BY id DESC
	LIMIT ?;`

	rows, err := j.db.QueryContext(ctx, selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query round journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(&entry.ID, &entry.Session, &entry.Round, &entry.Cause,
			&entry.Ticks, &entry.FinalLength, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return entries, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
