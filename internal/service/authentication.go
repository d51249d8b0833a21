// File: internal/service/authentication.go
package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"franceguessr/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// Claims is the payload of an access token.
type Claims struct {
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 access tokens.
type TokenCodec struct {
	Secret []byte
	// TTL <= 0 issues tokens without expiry.
	TTL time.Duration
}

// Issue signs a token for user. expiresAt is nil when the codec has no TTL.
func (c TokenCodec) Issue(user model.User) (string, *time.Time, error) {
	if len(c.Secret) == 0 {
		return "", nil, errors.New("Issue: empty signing secret")
	}

	now := timeNow()
	claims := Claims{
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       newTokenID(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	var expiresAt *time.Time
	if c.TTL > 0 {
		exp := now.Add(c.TTL).UTC().Truncate(time.Second)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
		expiresAt = &exp
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("Issue: %w", err)
	}
	return token, expiresAt, nil
}

// Verify parses tokenString and checks its signature and expiry. Every
// failure wraps ErrInvalidToken.
func (c TokenCodec) Verify(tokenString string) (*Claims, error) {
	if len(c.Secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", ErrInvalidToken)
	}

	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AuthenticateUser checks the supplied credentials against the stored user.
// Passwords are opaque strings compared byte for byte.
func AuthenticateUser(user model.User, email, hashedPassword string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(user.Email), []byte(email))
	passOK := subtle.ConstantTimeCompare([]byte(user.HashedPassword), []byte(hashedPassword))
	if emailOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
