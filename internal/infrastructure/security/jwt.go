package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// Claims is the payload carried by every issued token. The email travels as
// "username" so tokens stay readable by clients expecting that claim.
type Claims struct {
	Email string   `json:"username"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens. It holds no mutable state.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret, issuer string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(user *domain.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("issue token: user has no id")
	}
	now := i.now()
	claims := Claims{
		Email: user.Email,
		Roles: append([]string(nil), user.Roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses token and returns the principal it was issued for. Every
// failure collapses to domain.ErrInvalidToken.
func (i *JWTIssuer) Verify(token string) (domain.Principal, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}
