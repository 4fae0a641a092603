package session

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

// Claims are the parts of the access token the client cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims reads the token payload without checking the signature. Only the
// server can verify it; this is for display and profile hints.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var std jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &std); err != nil {
		return nil, errors.Wrap(err, "decode token failed")
	}

	c := &Claims{Subject: std.Subject}
	if std.ExpiresAt > 0 {
		c.ExpiresAt = time.Unix(std.ExpiresAt, 0)
	}
	return c, nil
}

func (s *Store) Claims() (*Claims, error) {
	return ParseClaims(s.Token())
}
