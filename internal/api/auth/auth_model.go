package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Detail messages surfaced on the wire. Clients match on these strings, so
// they are part of the API contract.
const (
	MsgNoActiveAccount        = "No active account found with the given credentials"
	MsgCredentialsNotProvided = "Authentication credentials were not provided."
	MsgTokenNotValid          = "Given token not valid for any token type"
	MsgRefreshTokenInvalid    = "Token is invalid or expired"
)

// User is the identity record persisted by the repository. The password hash
// never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
}

// RegisterResponse carries the created identity's public fields.
type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPairResponse is the body returned by login and refresh.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Claims carried inside access tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshToken is a stored refresh-token row.
type RefreshToken struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
}
