// Package sessions issues each browser a stable client id through an scs
// session cookie and can hold the favorites slot inside the session itself.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/mrlokans/bookhub/internal/config"
	"github.com/mrlokans/bookhub/internal/favorites"
)

// CookieName is the name of the session cookie.
const CookieName = "bookhub_session"

// SessionKeyClientID holds the client id issued to the browser.
const SessionKeyClientID = "client_id"

// SessionManager wraps scs.SessionManager with client id helpers.
type SessionManager struct {
	*scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// NewSessionManager creates a session manager storing sessions in sqlDB.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Sessions) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	store := sqlite3store.New(sqlDB)

	sm := scs.New()
	sm.Store = store
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Persist = true

	return &SessionManager{SessionManager: sm, store: store}, nil
}

// Close stops the expired session cleanup goroutine.
func (sm *SessionManager) Close() {
	sm.store.StopCleanup()
}

// ClientID returns the client id of the session in ctx, issuing a new one on
// first use.
func (sm *SessionManager) ClientID(ctx context.Context) string {
	if id := sm.GetString(ctx, SessionKeyClientID); id != "" {
		return id
	}
	id := uuid.NewString()
	sm.Put(ctx, SessionKeyClientID, id)
	return id
}

// KV returns a favorites.KV that keeps slots inside the request's session.
func (sm *SessionManager) KV() *KV {
	return &KV{sm: sm}
}

// KV stores slot payloads as session values. It only works with contexts
// that went through SessionLoadSave.
type KV struct {
	sm *SessionManager
}

var _ favorites.KV = (*KV)(nil)

func (kv *KV) Get(ctx context.Context, key string) (data []byte, err error) {
	defer recoverNoSession(&err)

	if !kv.sm.Exists(ctx, key) {
		return nil, favorites.ErrSlotMissing
	}
	return kv.sm.GetBytes(ctx, key), nil
}

func (kv *KV) Set(ctx context.Context, key string, value []byte) (err error) {
	defer recoverNoSession(&err)

	kv.sm.Put(ctx, key, append([]byte(nil), value...))
	return nil
}

// ErrNoSession is returned when a session slot is used outside a request.
var ErrNoSession = errors.New("no session in context")

// scs panics when ctx carries no session data.
func recoverNoSession(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrNoSession, r)
	}
}
