// Package session persists the browser client's view state between
// requests. Each browser gets its own view.State, stored server-side in
// SQLite through scs and addressed by a session cookie.
package session

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/view"
)

// SessionKeyState is the session key holding the serialized view.State.
const SessionKeyState = "catalog_state"

func init() {
	gob.Register(view.State{})
}

// Manager wraps scs.SessionManager with view-state helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by sqlDB.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "bookshelf_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// LoadState returns the request's view state, or a fresh one on page 1 if
// the browser has none yet.
func (m *Manager) LoadState(r *http.Request, pageSize int) *view.State {
	if s, ok := m.Get(r.Context(), SessionKeyState).(view.State); ok {
		if pageSize > 0 {
			s.PageSize = pageSize
		}
		return &s
	}
	return view.NewState(pageSize)
}

// SaveState stores the view state in the request's session.
func (m *Manager) SaveState(r *http.Request, s *view.State) {
	m.Put(r.Context(), SessionKeyState, *s)
}
