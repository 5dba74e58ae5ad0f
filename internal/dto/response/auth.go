package response

import (
	"time"

	"billboard-watch/internal/data/entity"
)

type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Phone           *string         `json:"phone,omitempty"`
	Role            entity.UserRole `json:"role"`
	IsEmailVerified bool            `json:"isEmailVerified"`
	LastLogin       *time.Time      `json:"lastLogin,omitempty"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordResponse is the generic ack. ResetToken is only populated
// outside production.
type ForgotPasswordResponse struct {
	ResetToken string `json:"resetToken,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Phone:           user.Phone,
		Role:            user.Role,
		IsEmailVerified: user.IsEmailVerified,
		LastLogin:       user.LastLogin,
	}
}
