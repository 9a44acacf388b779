package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so the HTTP boundary can map them without
// knowing which layer raised them.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindAccessDenied     ErrorKind = "access_denied"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindMalformed        ErrorKind = "malformed"
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindInternal         ErrorKind = "internal"
)

// Error is a classified failure. Message is safe to show to clients; Err is
// the optional cause and is never rendered.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError builds a client input error whose message is surfaced verbatim.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewMalformedError reports input whose shape does not match what was expected.
func NewMalformedError(msg string, cause error) *Error {
	return &Error{Kind: KindMalformed, Message: msg, Err: cause}
}

// StatusError carries an explicit HTTP status for failures that do not fit
// one of the kinds above.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

func (e *StatusError) StatusCode() int { return e.Code }

var (
	ErrMissingCredentials = NewValidationError("Veuillez fournir un email et un mot de passe.")
	ErrPasswordTooLong    = NewValidationError("Le mot de passe ne doit pas dépasser 72 octets.")
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Identifiants invalides"}
	ErrMissingToken       = &Error{Kind: KindUnauthorized, Message: "Jeton JWT introuvable"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "Jeton JWT invalide"}
	ErrAccessDenied       = &Error{Kind: KindAccessDenied, Message: "Accès refusé"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "Utilisateur non trouvé."}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "Cet e-mail est déjà enregistré."}
	ErrTooManyAttempts    = &StatusError{Code: http.StatusTooManyRequests, Message: "Trop de tentatives de connexion, réessayez plus tard."}
)

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
