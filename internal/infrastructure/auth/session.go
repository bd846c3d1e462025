// Package auth holds the console's credential: a bearer token read once at
// start-up and injected into the API client.
package auth

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of the backend-issued JWT the console displays or uses.
// The signature is never verified here; the backend remains the authority.
type Claims struct {
	Subject   string    `json:"subject"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Session carries the credential for every request of one console run.
type Session struct {
	token  string
	claims Claims
	parsed bool
}

// NewSession builds a session from a raw token. Opaque (non-JWT) tokens are
// accepted; they simply expose no claims.
func NewSession(token string) *Session {
	s := &Session{token: token}
	if token == "" {
		return s
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return s
	}
	s.parsed = true
	s.claims.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		s.claims.ExpiresAt = exp.Time
	}
	s.claims.Email = stringClaim(mc, "email")
	if s.claims.Email == "" {
		s.claims.Email = s.claims.Subject
	}
	s.claims.Role = stringClaim(mc, "role")
	for _, key := range []string{"userId", "user_id", "id"} {
		if id := intClaim(mc, key); id > 0 {
			s.claims.UserID = id
			break
		}
	}
	if s.claims.UserID == 0 {
		if id, err := strconv.ParseInt(s.claims.Subject, 10, 64); err == nil {
			s.claims.UserID = id
		}
	}
	return s
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return v
	}
	return ""
}

func intClaim(mc jwt.MapClaims, key string) int64 {
	switch v := mc[key].(type) {
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	}
	return 0
}

// Token returns the raw bearer token.
func (s *Session) Token() string {
	return s.token
}

// Anonymous reports whether no token was configured.
func (s *Session) Anonymous() bool {
	return s.token == ""
}

// IsJWT reports whether the token could be decoded as a JWT.
func (s *Session) IsJWT() bool {
	return s.parsed
}

// Claims returns the decoded claims (zero for opaque tokens).
func (s *Session) Claims() Claims {
	return s.claims
}

// UserID returns the signed-in user's id, or 0 when unknown.
func (s *Session) UserID() int64 {
	return s.claims.UserID
}

// Expired reports whether the token's exp claim lies before now.
// Tokens without exp never expire from the client's point of view.
func (s *Session) Expired(now time.Time) bool {
	return !s.claims.ExpiresAt.IsZero() && now.After(s.claims.ExpiresAt)
}

// Authorize sets the bearer header on req.
func (s *Session) Authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}
