package auth

// Identity is the authenticated caller: email and display name from the
// identity provider, plus the admin classification derived from
// configuration. It lives only in the session and is never persisted to an
// application table.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
