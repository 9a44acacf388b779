package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jwt-auth-api/backend/internal/api/metrics"
	"github.com/jwt-auth-api/backend/internal/core/domain"
)

const (
	msgAccessDenied     = "Accès refusé"
	msgNotFound         = "Ressource non trouvée"
	msgMethodNotAllowed = "Méthode non autorisée"
	msgConflict         = "Cet e-mail est déjà enregistré."
	msgTypePrefix       = "Erreur de type : "
	msgInternal         = "Une erreur est survenue, vérifiez votre requête"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// policy decides the status and client message for one error kind.
type policy struct {
	status  int
	message func(*domain.Error) string
}

func fixed(msg string) func(*domain.Error) string {
	return func(*domain.Error) string { return msg }
}

func own(e *domain.Error) string { return e.Message }

func ownOr(fallback string) func(*domain.Error) string {
	return func(e *domain.Error) string {
		if e.Message == "" {
			return fallback
		}
		return e.Message
	}
}

var kindPolicies = map[domain.ErrorKind]policy{
	domain.KindAccessDenied:     {http.StatusForbidden, fixed(msgAccessDenied)},
	domain.KindNotFound:         {http.StatusNotFound, ownOr(msgNotFound)},
	domain.KindMethodNotAllowed: {http.StatusMethodNotAllowed, fixed(msgMethodNotAllowed)},
	domain.KindValidation:       {http.StatusBadRequest, own},
	domain.KindMalformed:        {http.StatusBadRequest, func(e *domain.Error) string { return msgTypePrefix + e.Message }},
	domain.KindUnauthorized:     {http.StatusUnauthorized, own},
	domain.KindConflict:         {http.StatusConflict, fixed(msgConflict)},
}

// Framework errors whose text is replaced by a fixed message.
var httpStatusMessages = map[int]string{
	http.StatusForbidden:        msgAccessDenied,
	http.StatusNotFound:         msgNotFound,
	http.StatusMethodNotAllowed: msgMethodNotAllowed,
}

// NewHTTPErrorHandler returns the single echo.HTTPErrorHandler of the API.
// Every failure leaves as {"message": "..."}; unexpected errors are logged
// and rendered with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}
		metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(code), kind).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

// resolveError maps err to (status, kind label, client message).
func resolveError(err error) (int, string, string) {
	// Type mismatches are checked first: echo wraps them in a 400 HTTPError.
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return http.StatusBadRequest, string(domain.KindMalformed), msgTypePrefix + describeTypeError(te)
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if p, ok := kindPolicies[de.Kind]; ok {
			return p.status, string(de.Kind), p.message(de)
		}
		return http.StatusInternalServerError, string(domain.KindInternal), msgInternal
	}

	var se *domain.StatusError
	if errors.As(err, &se) {
		if se.Code >= http.StatusInternalServerError {
			return se.Code, "status", msgInternal
		}
		return se.Code, "status", se.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return http.StatusInternalServerError, string(domain.KindInternal), msgInternal
		}
		if msg, ok := httpStatusMessages[he.Code]; ok {
			return he.Code, "http", msg
		}
		return he.Code, "http", fmt.Sprintf("%v", he.Message)
	}

	return http.StatusInternalServerError, string(domain.KindInternal), msgInternal
}

// Only the kind of the expected type is shown, never the Go type name.
func describeTypeError(te *json.UnmarshalTypeError) string {
	want := "valeur"
	if te.Type != nil {
		want = te.Type.Kind().String()
	}
	if te.Field == "" {
		return fmt.Sprintf("%s attendu, %s reçu", want, te.Value)
	}
	return fmt.Sprintf("le champ %q attend %s, %s reçu", te.Field, want, te.Value)
}
