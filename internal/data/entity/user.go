package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Email     string   `db:"email"`
	FirstName string   `db:"first_name"`
	LastName  string   `db:"last_name"`
	Phone     *string  `db:"phone"`
	Role      UserRole `db:"role"`
	IsActive  bool     `db:"is_active"`

	// PasswordHash is only populated by the WithPassword repository reads.
	PasswordHash string `db:"password"`

	IsEmailVerified        bool       `db:"is_email_verified"`
	EmailVerificationToken *string    `db:"email_verification_token"`
	PasswordResetToken     *string    `db:"password_reset_token"`
	PasswordResetExpires   *time.Time `db:"password_reset_expires"`
	LastLogin              *time.Time `db:"last_login"`
}
