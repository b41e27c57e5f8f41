package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/reclaimhq/reclaim/internal/api"
	"github.com/reclaimhq/reclaim/internal/auth"
	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/store"
	"github.com/reclaimhq/reclaim/internal/testutil"
)

const frontendURL = "https://front.example/"

// fakeResolver stands in for the OIDC provider: each registered code maps
// straight to an identity.
type fakeResolver struct {
	identities map[string]*auth.Identity
}

func (f *fakeResolver) AuthCodeURL(state, codeChallenge string) string {
	return "https://idp.example/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeResolver) Resolve(ctx context.Context, code, codeVerifier string) (*auth.Identity, error) {
	id, ok := f.identities[code]
	if !ok {
		return nil, auth.ErrProviderRejected
	}
	return id, nil
}

// testEnv wires the full router with real stores, real sessions, and a fake
// identity provider.
type testEnv struct {
	Router    http.Handler
	ItemStore *store.ItemStore
	Service   *items.Service
	resolver  *fakeResolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	sessionManager := auth.NewSessionManager(db, "sqlite3", time.Hour, false)
	itemStore := store.NewItemStore(db)
	svc := items.NewService(itemStore)
	resolver := &fakeResolver{identities: map[string]*auth.Identity{}}

	router := api.NewRouter(api.Deps{
		SessionManager: sessionManager,
		AuthHandlers:   auth.NewHandlers(resolver, sessionManager, frontendURL, false),
		AuthMiddleware: auth.NewMiddleware(sessionManager),
		ItemService:    svc,
		CORSOrigins:    []string{"https://front.example"},
	})

	return &testEnv{
		Router:    router,
		ItemStore: itemStore,
		Service:   svc,
		resolver:  resolver,
	}
}

// login runs the full authorization code flow against the router and returns
// the session cookies to attach to subsequent requests.
func login(t *testing.T, env *testEnv, id *auth.Identity) []*http.Cookie {
	t.Helper()
	code := "code-" + id.Email
	env.resolver.identities[code] = id

	req := httptest.NewRequest("GET", "/login", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("login status = %d, want 302", rec.Code)
	}
	preAuth := rec.Result().Cookies()

	var state string
	for _, c := range preAuth {
		if c.Name == "__auth_state" {
			state = c.Value
		}
	}
	if state == "" {
		t.Fatal("login did not set a state cookie")
	}

	req = httptest.NewRequest("GET",
		"/login/callback?state="+url.QueryEscape(state)+"&code="+url.QueryEscape(code), nil)
	for _, c := range preAuth {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("callback status = %d, want 302; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != frontendURL {
		t.Fatalf("callback redirect = %q, want %q", loc, frontendURL)
	}

	var session []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			session = append(session, c)
		}
	}
	if len(session) == 0 {
		t.Fatal("callback did not set a session cookie")
	}
	return session
}

// withCookies attaches cookies to a request and returns it.
func withCookies(r *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}
