package logging

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/storedb"
)

const loggingModule = "logging"

// SQLiteSink persists events to a SQLite database, giving operators a
// queryable event log alongside the append-only JSONLWriter.
type SQLiteSink struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteSink opens (creating and migrating if needed) a SQLite database
// at path and returns a Sink backed by it.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := storedb.Open(storedb.OpenOptions{
		Path:       path,
		Module:     loggingModule,
		Migrations: eventMigrations(),
	})
	if err != nil {
		return nil, errx.Wrap(ErrCreateLogFile, err)
	}
	return &SQLiteSink{db: db}, nil
}

func eventMigrations() []storedb.Migration {
	return []storedb.Migration{
		{
			Version: 1,
			Name:    "create_events",
			SQL: `
CREATE TABLE IF NOT EXISTS events (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  ts           TEXT NOT NULL,
  run_id       TEXT NOT NULL,
  agent_system TEXT NOT NULL,
  event_type   TEXT NOT NULL,
  summary      TEXT NOT NULL,
  plugin       TEXT,
  tags         TEXT,
  data         TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id, ts);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type, ts);
`,
		},
	}
}

// Write inserts event as a row.
func (s *SQLiteSink) Write(event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tags, data []byte
	if len(event.Tags) > 0 {
		b, err := json.Marshal(event.Tags)
		if err != nil {
			return errx.Wrap(ErrMarshalData, err)
		}
		tags = b
	}
	if len(event.Data) > 0 {
		data = []byte(event.Data)
	}

	_, err := s.db.Exec(
		`INSERT INTO events (ts, run_id, agent_system, event_type, summary, plugin, tags, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000000Z"),
		event.RunID, event.AgentSystem, event.EventType, event.Summary,
		event.Plugin, string(tags), string(data),
	)
	if err != nil {
		return errx.Wrap(ErrWriteEvent, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Close(); err != nil {
		return errx.Wrap(ErrCloseWriter, err)
	}
	return nil
}

var _ Sink = (*SQLiteSink)(nil)
