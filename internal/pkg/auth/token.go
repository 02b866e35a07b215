package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNotAdmin     = errors.New("admin access required")
)

const (
	claimUID   = "uid"
	claimEmail = "email"
	claimAdmin = "admin"
	claimExp   = "exp"
)

// Verifier checks HS256 tokens issued by the identity provider.
type Verifier struct {
	secret      []byte
	adminEmails map[string]bool
}

// NewVerifier builds a verifier. Users whose email is in adminEmails are
// admins even without the admin claim.
func NewVerifier(secret string, adminEmails []string) *Verifier {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return &Verifier{secret: []byte(secret), adminEmails: admins}
}

// Verify parses a raw token, with or without its "Bearer " prefix.
func (v *Verifier) Verify(raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, _ := claims[claimUID].(string)
	if uid == "" {
		return nil, fmt.Errorf("%w: no uid claim", ErrInvalidToken)
	}
	email, _ := claims[claimEmail].(string)
	admin, _ := claims[claimAdmin].(bool)

	return &Identity{
		UID:   uid,
		Email: email,
		Admin: admin || v.adminEmails[strings.ToLower(email)],
	}, nil
}

// Mint signs a token for id that expires after ttl. It backs the
// development token command.
func Mint(secret string, id Identity, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{}
	claims[claimUID] = id.UID
	claims[claimEmail] = id.Email
	claims[claimAdmin] = id.Admin
	claims[claimExp] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
