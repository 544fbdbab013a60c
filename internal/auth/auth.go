// Package auth simulates operator sign-in over the fixture users.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/water-iq/monitor/internal/model"
)

// DefaultPassword is shared by every fixture user.
const DefaultPassword = "password"

const (
	DefaultTokenTTL = 24 * time.Hour
	issuer          = "water-iq"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("missing bearer token")
)

type Claims struct {
	Email string         `json:"email"`
	Role  model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

type account struct {
	user model.User
	hash []byte
}

type Authenticator struct {
	secret   []byte
	ttl      time.Duration
	accounts map[string]account
	now      func() time.Time
}

type Option func(*options)

type options struct {
	cost int
	now  func() time.Time
}

// WithHashCost overrides the bcrypt cost used for the fixture hashes.
func WithHashCost(cost int) Option {
	return func(o *options) { o.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New hashes DefaultPassword for every user and signs tokens with secret.
func New(secret string, ttl time.Duration, users []model.User, opts ...Option) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	o := options{cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	accounts := make(map[string]account, len(users))
	for _, user := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), o.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", user.Email, err)
		}
		accounts[normalizeEmail(user.Email)] = account{user: user, hash: hash}
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl, accounts: accounts, now: o.now}, nil
}

// Login checks the password and issues an HS256 token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (a *Authenticator) Login(email, password string) (Session, error) {
	acct, ok := a.accounts[normalizeEmail(email)]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := a.now()
	expiresAt := now.Add(a.ttl)
	claims := Claims{
		Email: acct.user.Email,
		Role:  acct.user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt.UTC(), User: acct.user}, nil
}

// Verify parses token and returns its claims.
func (a *Authenticator) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// FromRequest verifies the Authorization bearer token of r.
func (a *Authenticator) FromRequest(r *http.Request) (Claims, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Claims{}, ErrMissingToken
	}
	return a.Verify(strings.TrimSpace(token))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
