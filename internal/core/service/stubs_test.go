package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubUserStore struct {
	byEmail map[string]*domain.User
	seq     int
	calls   int   // number of store methods invoked
	findErr error // if set, FindByEmail returns this error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserStore) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls++
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.seq)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls++
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserStore) List(_ context.Context) ([]*domain.User, error) {
	r.calls++
	out := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserStore) DeleteByID(_ context.Context, id string) error {
	r.calls++
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserStore) DeleteByEmail(_ context.Context, email string) error {
	r.calls++
	if _, ok := r.byEmail[email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, email)
	return nil
}

// ---------------------------------------------------------------------------
// Hasher / issuer / throttle stubs
// ---------------------------------------------------------------------------

// plainHasher prefixes instead of hashing to keep tests fast.
type plainHasher struct{ verifyCalls int }

func (h *plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (h *plainHasher) Verify(hash, password string) bool {
	h.verifyCalls++
	return hash == "hashed:"+password
}

type stubIssuer struct {
	err    error
	issued []*domain.User
}

func (i *stubIssuer) Issue(u *domain.User) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.issued = append(i.issued, cloneUser(u))
	return "token-" + u.ID, nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
	err      error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Blocked(_ context.Context, email string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	delete(t.failures, email)
	return nil
}

var errStoreDown = errors.New("connection refused")
