package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/api/apitest"
	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/model"
)

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "foundloss")
}

func newStore(t *testing.T) (*Store, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return NewStore(api.New(srv.URL)), srv
}

func Test_cfgDir_And_CredPath(t *testing.T) {
	base := withTmpConfig(t)
	if cfgDir() != base {
		t.Fatalf("cfgDir=%q, want %q", cfgDir(), base)
	}
	if !strings.HasSuffix(credPath(), "token.json") {
		t.Fatalf("credPath unexpected: %s", credPath())
	}
}

func Test_cred_SaveLoadExpiry(t *testing.T) {
	withTmpConfig(t)

	if tok := loadCred(); tok != "" {
		t.Fatalf("expected empty token when file missing, got %q", tok)
	}
	if err := saveCred("tok", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("saveCred: %v", err)
	}
	if tok := loadCred(); tok != "tok" {
		t.Fatalf("loadCred=%q, want tok", tok)
	}
	if err := saveCred("tok2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("saveCred expired: %v", err)
	}
	if tok := loadCred(); tok != "" {
		t.Fatalf("expired credential must not load, got %q", tok)
	}
	clearCred()
	if _, err := os.Stat(credPath()); !os.IsNotExist(err) {
		t.Fatalf("clearCred left the file behind: %v", err)
	}
}

func Test_tokenExpiry_Fallback(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(fallbackTTL - time.Minute)
	got := tokenExpiry("not-a-jwt")
	if got.Before(before) {
		t.Fatalf("opaque token should get the fallback TTL, got %v", got)
	}
}

func TestRegisterScenario(t *testing.T) {
	withTmpConfig(t)
	store, _ := newStore(t)

	u, err := store.Register(context.Background(), model.Profile{
		Email:    "a@b.com",
		Password: "abc123",
		FullName: "Ada B",
		Phone:    "+1 555-123-4567",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "a@b.com" {
		t.Fatalf("registered email=%q", u.Email)
	}
	cur := store.CurrentUser()
	if cur == nil || cur.Email != "a@b.com" {
		t.Fatalf("session not authenticated after register: %+v", cur)
	}
	if loadCred() == "" {
		t.Fatal("credential not persisted after register")
	}
}

func TestLoginFailureKeepsPriorState(t *testing.T) {
	withTmpConfig(t)
	store, srv := newStore(t)
	srv.AddUser("a@b.com", "abc123", "Ada B", "+1 555")

	if _, err := store.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "abc123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	tok := store.Token()

	_, err := store.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if store.CurrentUser() == nil || store.Token() != tok {
		t.Fatal("failed login must not alter prior session state")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	withTmpConfig(t)
	store, srv := newStore(t)
	srv.AddUser("a@b.com", "abc123", "Ada B", "+1 555")
	if _, err := store.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "abc123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	store.Logout()
	if store.CurrentUser() != nil || store.Token() != "" {
		t.Fatal("logout must clear the in-memory session")
	}
	if loadCred() != "" {
		t.Fatal("logout must discard the persisted credential")
	}
}

func TestRestoreValidCredential(t *testing.T) {
	withTmpConfig(t)
	store, srv := newStore(t)
	u, tok := srv.AddUser("a@b.com", "abc123", "Ada B", "+1 555")
	if err := saveCred(tok, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("saveCred: %v", err)
	}

	store.Restore(context.Background())
	cur := store.CurrentUser()
	if cur == nil || cur.ID != u.ID {
		t.Fatalf("restore should authenticate, got %+v", cur)
	}
	if store.IsLoading() {
		t.Fatal("loading must settle after restore")
	}
}

func TestRestoreInvalidCredentialSettlesAnonymous(t *testing.T) {
	withTmpConfig(t)
	store, srv := newStore(t)
	_, tok := srv.AddUser("a@b.com", "abc123", "Ada B", "+1 555")
	srv.RevokeToken(tok)
	if err := saveCred(tok, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("saveCred: %v", err)
	}

	store.Restore(context.Background())
	if store.CurrentUser() != nil {
		t.Fatal("invalid credential must settle anonymous")
	}
	if store.IsLoading() {
		t.Fatal("store must not be stuck loading")
	}
	if loadCred() != "" {
		t.Fatal("invalid credential must be cleared from disk")
	}
}

func TestRestoreHappensOnce(t *testing.T) {
	withTmpConfig(t)
	store, srv := newStore(t)
	_, tok := srv.AddUser("a@b.com", "abc123", "Ada B", "+1 555")
	if err := saveCred(tok, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("saveCred: %v", err)
	}

	store.Restore(context.Background())
	n := srv.Requests
	store.Restore(context.Background())
	if srv.Requests != n {
		t.Fatalf("second Restore must not hit the backend (%d -> %d requests)", n, srv.Requests)
	}
}
