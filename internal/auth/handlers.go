package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/reclaimhq/reclaim/internal/metrics"
)

const (
	cookieState        = "__auth_state"
	cookieCodeVerifier = "__auth_pkce"
)

// Handlers provides HTTP handlers for the OAuth login flow.
type Handlers struct {
	resolver    IdentityResolver
	sessions    *scs.SessionManager
	frontendURL string
	secure      bool
}

// NewHandlers creates a new Handlers with the given dependencies.
// frontendURL is where the browser lands after a successful callback.
func NewHandlers(r IdentityResolver, sm *scs.SessionManager, frontendURL string, secure bool) *Handlers {
	return &Handlers{resolver: r, sessions: sm, frontendURL: frontendURL, secure: secure}
}

// Login initiates the authorization code flow with PKCE.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state, err := GenerateState()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	verifier, challenge, err := GeneratePKCE()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Store state and verifier in short-lived cookies
	h.setPreAuthCookie(w, cookieState, state)
	h.setPreAuthCookie(w, cookieCodeVerifier, verifier)

	http.Redirect(w, r, h.resolver.AuthCodeURL(state, challenge), http.StatusFound)
}

// Callback handles the provider redirect after consent. On success the
// identity is written to the session and the browser is sent to the
// configured frontend; on any failure no session is established.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Validate state
	stateCookie, err := r.Cookie(cookieState)
	if err != nil || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	// Get PKCE verifier
	verifierCookie, err := r.Cookie(cookieCodeVerifier)
	if err != nil {
		http.Error(w, "missing code verifier", http.StatusBadRequest)
		return
	}

	identity, err := h.resolver.Resolve(r.Context(), r.URL.Query().Get("code"), verifierCookie.Value)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	// Rotate the session token before elevating it to an authenticated one.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	PutIdentity(r.Context(), h.sessions, identity)
	metrics.LoginsTotal.Inc()

	// Clear pre-auth cookies
	clearCookie(w, cookieState)
	clearCookie(w, cookieCodeVerifier)

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// Logout destroys the session and confirms with a JSON message.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		http.Error(w, "logout error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Logged out"})
}

// Me returns the session identity as JSON, or null for anonymous callers.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, IdentityFromSession(r.Context(), h.sessions))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handlers) setPreAuthCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   300, // 5 minutes
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
}
