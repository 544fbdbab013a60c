package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/water-iq/monitor/internal/mockdata"
	"github.com/water-iq/monitor/internal/model"
)

func newTestAuthenticator(t *testing.T, now func() time.Time) *Authenticator {
	t.Helper()
	a, err := New("test-secret", time.Hour, mockdata.Users(), WithHashCost(bcrypt.MinCost), WithClock(now))
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	return a
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	a := newTestAuthenticator(t, nil)

	session, err := a.Login("  Mohale@WaterMonitor.com ", DefaultPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.Role != model.RoleAdmin {
		t.Fatalf("role = %q, want %q", session.User.Role, model.RoleAdmin)
	}

	claims, err := a.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != session.User.ID || claims.Email != session.User.Email {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAuthenticator(t, nil)
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "mohale@watermonitor.com", password: "hunter2"},
		{name: "unknown user", email: "nobody@watermonitor.com", password: DefaultPassword},
		{name: "empty", email: "", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Login(tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	issued := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := issued
	a := newTestAuthenticator(t, func() time.Time { return now })
	session, err := a.Login("thebe@watermonitor.com", DefaultPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	now = issued.Add(2 * time.Hour)
	if _, err := a.Verify(session.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}

	other, err := New("another-secret", time.Hour, mockdata.Users(), WithHashCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	foreign, err := other.Login("thebe@watermonitor.com", DefaultPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	now = issued
	if _, err := a.Verify(foreign.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected foreign token to fail, got %v", err)
	}
}

func TestFromRequest(t *testing.T) {
	a := newTestAuthenticator(t, nil)
	session, err := a.Login("selimo@watermonitor.com", DefaultPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	if _, err := a.FromRequest(req); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	req.Header.Set("Authorization", "Basic abc")
	if _, err := a.FromRequest(req); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken for basic auth, got %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.Token)
	claims, err := a.FromRequest(req)
	if err != nil {
		t.Fatalf("from request: %v", err)
	}
	if claims.Role != model.RoleUser {
		t.Fatalf("role = %q, want %q", claims.Role, model.RoleUser)
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New("", time.Hour, nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
