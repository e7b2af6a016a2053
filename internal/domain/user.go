package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type BetaStatus string

const (
	BetaPending  BetaStatus = "pending"
	BetaApproved BetaStatus = "approved"
	BetaRejected BetaStatus = "rejected"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         UserRole   `json:"role"`
	BetaStatus   BetaStatus `json:"beta_status,omitempty"`

	// Set when the account was created through Google sign-in.
	// Such accounts may have an empty PasswordHash.
	GoogleID string `json:"-"`

	// Outstanding password-reset token. At most one per user: issuing a
	// new one overwrites these fields, consuming the token clears both.
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasBetaAccess() bool {
	return u.Role == RoleAdmin || u.BetaStatus == BetaApproved
}
