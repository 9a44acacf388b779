package metrics

import (
	"errors"
	"strconv"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

// Outcome turns an operation result into an "outcome" label value.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var se *domain.StatusError
	if errors.As(err, &se) {
		return "status_" + strconv.Itoa(se.Code)
	}
	return string(domain.KindOf(err))
}
