// Package postlog keeps a SQLite record of every status the adapter posts.
package postlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS posted_statuses (
	status_id   INTEGER PRIMARY KEY,
	in_reply_to INTEGER NULL,
	text        TEXT NOT NULL,
	posted_at   TEXT NOT NULL
);
`

// Entry is one posted status.
type Entry struct {
	StatusID  int64
	InReplyTo int64 // 0 for a top-level status
	Text      string
	PostedAt  time.Time
}

type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("post log %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("post log schema: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) Record(ctx context.Context, e Entry) error {
	var replyTo any
	if e.InReplyTo != 0 {
		replyTo = e.InReplyTo
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO posted_statuses (status_id, in_reply_to, text, posted_at) VALUES (?, ?, ?, ?)`,
		e.StatusID, replyTo, e.Text, e.PostedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Chain walks in_reply_to links back from id and returns the statuses
// oldest first. Links leaving the journal end the walk.
func (l *Log) Chain(ctx context.Context, id int64) ([]Entry, error) {
	const sqlq = `
SELECT status_id, in_reply_to, text, posted_at
FROM posted_statuses
WHERE status_id = ?;
`
	var chain []Entry
	for id != 0 {
		var (
			e       Entry
			replyTo sql.NullInt64
			posted  string
		)
		err := l.db.QueryRowContext(ctx, sqlq, id).Scan(&e.StatusID, &replyTo, &e.Text, &posted)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return nil, err
		}
		e.InReplyTo = replyTo.Int64
		if e.PostedAt, err = time.Parse(time.RFC3339Nano, posted); err != nil {
			return nil, fmt.Errorf("status %d: bad posted_at %q: %w", e.StatusID, posted, err)
		}
		chain = append(chain, e)
		id = e.InReplyTo
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
