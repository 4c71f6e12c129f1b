package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window for issued tokens. There is no
// refresh or revocation; clients re-login after expiry.
const TokenTTL = time.Hour

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed input, or an unexpected signing algorithm. Callers get no finer
// distinction so that responses cannot be used to probe token internals.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a verified token.
type Claims struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 bearer tokens carrying an email claim.
// The zero value is unusable; construct with NewIssuer.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. The clock defaults to
// time.Now and is overridable for tests via WithClock.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

// WithClock replaces the issuer's clock and returns the issuer.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue mints a signed token binding email for the issuer's TTL.
func (i *Issuer) Issue(email string) (string, error) {
	issued := i.now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   issued.Unix(),
		"exp":   issued.Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify validates tok and returns its claims, or ErrInvalidToken.
func (i *Issuer) Verify(tok string) (*Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{Email: email, IssuedAt: iat.Time, ExpiresAt: exp.Time}, nil
}
