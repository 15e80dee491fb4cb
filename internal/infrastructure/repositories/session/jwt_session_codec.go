package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

const issuer = "sqlplayground"

// JWTSessionCodec signs session IDs as HS256 JWTs carried by the session cookie
// or an Authorization bearer header. Only the session ID travels in the token;
// the provider access token stays server-side.
type JWTSessionCodec struct {
	secret []byte
	now    func() time.Time
}

// NewJWTSessionCodec creates a codec signing with the configured session secret.
func NewJWTSessionCodec(settings *entities.Settings) (*JWTSessionCodec, error) {
	if settings.Session.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &JWTSessionCodec{secret: []byte(settings.Session.Secret), now: time.Now}, nil
}

// Encode signs a credential for the session, valid until the session expires.
func (c *JWTSessionCodec) Encode(session *entities.Session) (string, error) {
	if session == nil || session.ID == "" {
		return "", fmt.Errorf("%w: session id is required", entities.ErrInvalidSession)
	}

	claims := jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  session.ID,
		IssuedAt: jwt.NewNumericDate(session.CreatedAt),
	}
	if !session.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(session.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session credential: %w", err)
	}
	return signed, nil
}

// Decode verifies the credential and returns the session ID it carries.
func (c *JWTSessionCodec) Decode(credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%w: empty credential", entities.ErrInvalidSession)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		credential,
		claims,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entities.ErrInvalidSession, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", entities.ErrInvalidSession)
	}
	return claims.Subject, nil
}
