package aegis

import "time"

// UserRole is the role of a user within a site.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParseRole maps an arbitrary string onto a role, defaulting to RoleUser.
func ParseRole(s string) UserRole {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Site is a tenant within the authentication backend.
type Site struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Domain                string    `json:"domain"`
	AllowSelfRegistration bool      `json:"allow_self_registration"`
	CreatedAt             time.Time `json:"created_at"`
}

// User as seen by the admin consoles.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Token is a credential issued by the backend.
type Token struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResult is the backend's response to a successful login.
type LoginResult struct {
	AuthToken    Token `json:"auth_token"`
	RefreshToken Token `json:"refresh_token"`
}

// TokenStatus reports whether a verification token needs a password
// collected before the email can be verified.
type TokenStatus struct {
	Email            string `json:"email"`
	PasswordRequired bool   `json:"password_required"`
}

// Health is the backend's health report.
type Health struct {
	Status string `json:"status"`
}
