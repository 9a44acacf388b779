package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwt-auth-api/backend/internal/core/domain"
	"github.com/jwt-auth-api/backend/internal/infrastructure/security"
)

func newTestAuthService(t *testing.T, store *stubUserStore, issuer *stubIssuer, opts ...AuthOption) (*AuthService, *plainHasher) {
	t.Helper()
	hasher := &plainHasher{}
	svc, err := NewAuthService(store, hasher, issuer, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, hasher
}

func TestAuthService_Register_Success(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestAuthService(t, store, &stubIssuer{})

	user, token, err := svc.Register(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if user.PasswordHash == "p1" {
		t.Fatalf("expected password to be hashed")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
	if _, err := store.FindByEmail(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("registered user not found by email: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestAuthService(t, store, &stubIssuer{})

	cases := []struct{ email, password string }{
		{"", "p1"},
		{"a@x.com", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.email, tc.password); err != domain.ErrMissingCredentials {
			t.Fatalf("Register(%q, %q): expected ErrMissingCredentials, got %v", tc.email, tc.password, err)
		}
	}
	if store.calls != 0 {
		t.Fatalf("store must not be touched on validation failure, got %d calls", store.calls)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := newStubUserStore()
	issuer := &stubIssuer{}
	svc, _ := newTestAuthService(t, store, issuer)

	first, _, err := svc.Register(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, token, err := svc.Register(context.Background(), "a@x.com", "p2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if token != "" {
		t.Fatalf("no token may be issued on conflict")
	}
	if len(issuer.issued) != 1 {
		t.Fatalf("expected exactly one issued token, got %d", len(issuer.issued))
	}

	kept, _ := store.FindByEmail(context.Background(), "a@x.com")
	if kept.ID != first.ID || kept.PasswordHash != "hashed:p1" {
		t.Fatalf("first user was modified: %+v", kept)
	}
}

func TestAuthService_Register_TokenFailureKeepsUser(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestAuthService(t, store, &stubIssuer{err: errors.New("signing failed")})

	if _, _, err := svc.Register(context.Background(), "a@x.com", "p1"); err == nil {
		t.Fatalf("expected error when token issuance fails")
	}
	if _, err := store.FindByEmail(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("user should persist after token failure: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestAuthService(t, store, &stubIssuer{})
	user, _, _ := svc.Register(context.Background(), "a@x.com", "p1")

	token, err := svc.Login(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token-"+user.ID {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestAuthService(t, store, &stubIssuer{})

	if _, err := svc.Login(context.Background(), "a@x.com", ""); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", "p1"); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	store := newStubUserStore()
	svc, hasher := newTestAuthService(t, store, &stubIssuer{})
	_, _, _ = svc.Register(context.Background(), "a@x.com", "p1")

	_, wrongPass := svc.Login(context.Background(), "a@x.com", "wrong")
	hasher.verifyCalls = 0
	_, unknown := svc.Login(context.Background(), "nouser@x.com", "p1")

	if wrongPass != domain.ErrInvalidCredentials || unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPass, unknown)
	}
	if hasher.verifyCalls != 1 {
		t.Fatalf("unknown email should still run one hash comparison, got %d", hasher.verifyCalls)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	store := newStubUserStore()
	store.findErr = errStoreDown
	svc, _ := newTestAuthService(t, store, &stubIssuer{})

	_, err := svc.Login(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := newStubUserStore()
	throttle := newStubThrottle(2)
	svc, _ := newTestAuthService(t, store, &stubIssuer{}, WithLoginThrottle(throttle))
	_, _, _ = svc.Register(context.Background(), "a@x.com", "p1")

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	calls := store.calls
	if _, err := svc.Login(context.Background(), "a@x.com", "p1"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if store.calls != calls {
		t.Fatalf("blocked login must not reach the store")
	}
}

func TestAuthService_Login_ThrottleResetOnSuccess(t *testing.T) {
	store := newStubUserStore()
	throttle := newStubThrottle(3)
	svc, _ := newTestAuthService(t, store, &stubIssuer{}, WithLoginThrottle(throttle))
	_, _, _ = svc.Register(context.Background(), "a@x.com", "p1")

	_, _ = svc.Login(context.Background(), "a@x.com", "wrong")
	if _, err := svc.Login(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.failures["a@x.com"] != 0 {
		t.Fatalf("expected failures to reset, got %d", throttle.failures["a@x.com"])
	}
}

func TestAuthService_Login_ThrottleErrorsFailOpen(t *testing.T) {
	store := newStubUserStore()
	throttle := newStubThrottle(1)
	throttle.err = errors.New("redis down")
	svc, _ := newTestAuthService(t, store, &stubIssuer{}, WithLoginThrottle(throttle))
	_, _, _ = svc.Register(context.Background(), "a@x.com", "p1")

	if _, err := svc.Login(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("throttle failure should not block login: %v", err)
	}
}

func TestAuthService_WithRealSecurity(t *testing.T) {
	store := newStubUserStore()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := security.NewJWTIssuer("secret", "test", time.Hour)
	svc, err := NewAuthService(store, hasher, issuer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	user, token, err := svc.Register(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("p1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	p, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if p.ID != user.ID || !p.HasRole(domain.RoleUser) || p.HasRole(domain.RoleAdmin) {
		t.Fatalf("unexpected principal: %+v", p)
	}

	if _, err := svc.Login(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
