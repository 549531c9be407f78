// Package session wires alexedwards/scs into gin and provides flash messages
// that survive exactly one redirect.
package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookcatalog/internal/config"
)

const flashKey = "flashes"

// FlashLevel mirrors the message levels used by the templates for styling.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   FlashLevel
	Message string
}

func init() {
	gob.Register([]Flash{})
}

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager backed by the sessions table in sqlDB.
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
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the cookie follows the post-redirect-get hop
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// AddFlash queues a message for the next page render.
func (m *Manager) AddFlash(ctx context.Context, level FlashLevel, message string) {
	flashes, _ := m.Get(ctx, flashKey).([]Flash)
	m.Put(ctx, flashKey, append(flashes, Flash{Level: level, Message: message}))
}

// PopFlashes returns and clears all queued messages.
func (m *Manager) PopFlashes(ctx context.Context) []Flash {
	flashes, _ := m.Pop(ctx, flashKey).([]Flash)
	return flashes
}

// GenerateSecret returns a random hex secret for CSRF tokens when none is configured.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
