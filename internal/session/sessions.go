// Package session ties per-browser UI state to scs sessions stored in SQLite.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/richclient/internal/config"
	"github.com/mrlokans/richclient/internal/store"
)

// Session data keys
const (
	KeyStateID  = "ui_state_id"
	KeySnapshot = "ui_state"
)

// OpenDatabase opens the SQLite database that backs the session store.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}
	return db, nil
}

// Manager wraps scs.SessionManager with UI state helpers.
type Manager struct {
	*scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// NewManager creates a configured session manager on top of db.
func NewManager(db *sql.DB, cfg config.Session) (*Manager, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	sm := scs.New()

	st := sqlite3store.New(db)
	sm.Store = st

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm, store: st}, nil
}

// Close stops the background cleanup of expired sessions.
func (m *Manager) Close() {
	if m.store != nil {
		m.store.StopCleanup()
	}
}

// StateID returns the UI state ID of the session in ctx, assigning a new one
// if the session has none yet.
func (m *Manager) StateID(ctx context.Context) string {
	if id := m.GetString(ctx, KeyStateID); id != "" {
		return id
	}
	id := uuid.NewString()
	m.Put(ctx, KeyStateID, id)
	return id
}

// SaveSnapshot stores snap in the session so the state survives restarts.
func (m *Manager) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode ui state: %w", err)
	}
	m.Put(ctx, KeySnapshot, data)
	return nil
}

// LoadSnapshot returns the snapshot stored in the session, if any.
func (m *Manager) LoadSnapshot(ctx context.Context) (store.Snapshot, bool) {
	data := m.GetBytes(ctx, KeySnapshot)
	if len(data) == 0 {
		return store.Snapshot{}, false
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, false
	}
	return snap, true
}
