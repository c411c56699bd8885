package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mandi/backend/internal/domain/identity"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	CompanyName string   `json:"company_name" binding:"required,min=1,max=200"`
	Email       string   `json:"email" binding:"required,email,max=200"`
	Mobile      string   `json:"mobile" binding:"required,max=20"`
	Address     string   `json:"address" binding:"max=500"`
	Password    string   `json:"password" binding:"required,min=8,max=128"`
	Partners    []string `json:"partners" binding:"max=10,dive,max=200"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	CompanyName *string  `json:"company_name" binding:"omitempty,min=1,max=200"`
	Mobile      *string  `json:"mobile" binding:"omitempty,max=20"`
	Address     *string  `json:"address" binding:"omitempty,max=500"`
	Partners    []string `json:"partners" binding:"omitempty,max=10,dive,max=200"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Address     string    `json:"address"`
	Partners    []string  `json:"partners"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse carries the issued tokens and the account profile
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

func toUserResponse(u *identity.User) UserResponse {
	partners := u.Partners
	if partners == nil {
		partners = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		CompanyName: u.CompanyName,
		Email:       u.Email,
		Mobile:      u.Mobile,
		Address:     u.Address,
		Partners:    partners,
		CreatedAt:   u.CreatedAt,
	}
}
