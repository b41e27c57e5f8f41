package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

const (
	sessionEmailKey = "identity_email"
	sessionNameKey  = "identity_name"
	sessionAdminKey = "identity_admin"
)

// NewSessionManager creates an SCS session manager backed by the application
// DB. The driver parameter selects the appropriate store: "mysql",
// "postgres", or "sqlite3" (default).
func NewSessionManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// PutIdentity stores the resolved identity in the current session.
func PutIdentity(ctx context.Context, sm *scs.SessionManager, id *Identity) {
	sm.Put(ctx, sessionEmailKey, id.Email)
	sm.Put(ctx, sessionNameKey, id.Name)
	sm.Put(ctx, sessionAdminKey, id.IsAdmin)
}

// IdentityFromSession reads the identity out of the current session, or nil
// when the caller is anonymous.
func IdentityFromSession(ctx context.Context, sm *scs.SessionManager) *Identity {
	email := sm.GetString(ctx, sessionEmailKey)
	if email == "" {
		return nil
	}
	return &Identity{
		Email:   email,
		Name:    sm.GetString(ctx, sessionNameKey),
		IsAdmin: sm.GetBool(ctx, sessionAdminKey),
	}
}
