// Package session holds the authenticated-user context for one client
// process: the bearer credential, the cached user, and the gates that
// page composition uses to decide what an anonymous visitor may see.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/model"
)

// fallbackTTL is assumed when a token carries no readable exp claim. It
// matches the backend's configured access token lifetime.
const fallbackTTL = 30 * time.Minute

// credFile is the persisted credential, stored under the user config dir.
type credFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "foundloss")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "foundloss")
}

func credPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveCred(tok string, exp time.Time) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.Create(credPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(credFile{AccessToken: tok, ExpiresAt: exp})
}

// loadCred returns the stored token, or "" when absent or expired.
func loadCred() string {
	b, err := os.ReadFile(credPath())
	if err != nil {
		return ""
	}
	var cf credFile
	if err := json.Unmarshal(b, &cf); err != nil {
		return ""
	}
	if cf.AccessToken == "" || time.Now().After(cf.ExpiresAt) {
		return ""
	}
	return cf.AccessToken
}

func clearCred() { _ = os.Remove(credPath()) }

// tokenExpiry reads the exp claim without validating the signature (the
// client has no key; the backend is the authority). Falls back to a fixed
// TTL when the claim is absent or unreadable.
func tokenExpiry(tok string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(tok, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(fallbackTTL)
}

// Store is the process-wide session state. Reads are synchronous and safe
// for concurrent use; writes happen only through Login, Register, Logout
// and the one-shot Restore.
type Store struct {
	api *api.Client
	log *zap.Logger

	mu       sync.Mutex
	user     *model.User
	token    string
	loading  bool
	restored bool
}

// NewStore creates a Store bound to the given API client. The store starts
// anonymous; call Restore once at startup to resurrect a persisted session.
func NewStore(client *api.Client, opts ...StoreOption) *Store {
	s := &Store{api: client, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) StoreOption { return func(s *Store) { s.log = l } }

// CurrentUser returns the cached user, or nil when anonymous.
func (s *Store) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoading reports whether a startup restoration is in flight. Gates must
// not redirect while this is true.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Token returns the current bearer credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Restore attempts to resurrect a persisted session: if an unexpired
// credential is on disk, the store enters the loading state and resolves
// the user from the backend. Any failure discards the credential and
// settles the session into the anonymous state. Exactly one attempt is
// made per process; later calls are no-ops.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	tok := loadCred()
	if tok == "" {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	user, err := s.api.Me(ctx, tok)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Info("session restore failed, discarding credential", zap.Error(err))
		clearCred()
		return
	}
	s.user = &user
	s.token = tok
	s.log.Debug("session restored", zap.String("user", user.ID))
}

// Register creates an account and, on success, authenticates the session.
// On failure the session keeps whatever state it had.
func (s *Store) Register(ctx context.Context, profile model.Profile) (model.User, error) {
	tok, err := s.api.Register(ctx, profile)
	if err != nil {
		return model.User{}, err
	}
	s.adopt(tok)
	return tok.User, nil
}

// Login authenticates the session. On failure prior session state is left
// untouched.
func (s *Store) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	tok, err := s.api.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	s.adopt(tok)
	return tok.User, nil
}

// Logout clears the cached user and the persisted credential. It always
// succeeds and performs no navigation; callers redirect afterwards.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	clearCred()
}

// adopt installs a freshly issued token envelope and persists the
// credential. Persistence failure is not fatal: the in-memory session is
// valid for this process either way.
func (s *Store) adopt(tok model.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := tok.User
	s.user = &u
	s.token = tok.AccessToken
	if err := saveCred(tok.AccessToken, tokenExpiry(tok.AccessToken)); err != nil {
		s.log.Warn("could not persist credential", zap.Error(err))
	}
}
