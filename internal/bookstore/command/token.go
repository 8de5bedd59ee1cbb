package command

import (
	"strconv"
	"time"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/domain"
	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
)

// TokenIssuer mints session tokens for authenticated users. It is constructed
// once at startup from the process configuration and injected into handlers,
// so tests can run with distinct issuers side by side.
type TokenIssuer struct {
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TTL      time.Duration

	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time
}

// IssueToken signs a fresh session token for the user and returns it along
// with its expiry timestamp.
func (ti *TokenIssuer) IssueToken(u domain.User) (string, time.Time, error) {
	now := time.Now
	if ti.Now != nil {
		now = ti.Now
	}

	ttl := ti.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	issuedAt := now().UTC()
	claims := jwtx.NewSessionClaims(
		strconv.FormatInt(u.ID, 10),
		u.Username, u.Email, u.Role,
		ttl, ti.Issuer, ti.Audience, issuedAt,
	)

	token, err := ti.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, issuedAt.Add(ttl), nil
}
