package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{domain.ErrInvalidCredentials, "unauthorized"},
		{fmt.Errorf("wrapped: %w", domain.ErrUserNotFound), "not_found"},
		{domain.ErrTooManyAttempts, "status_429"},
		{errors.New("boom"), "internal"},
	}
	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Fatalf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
