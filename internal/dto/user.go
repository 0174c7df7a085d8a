package dto

import (
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64    `json:"id"`
	Email          string    `json:"email"`
	PushSubscribed bool      `json:"pushSubscribed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Email:          user.Email,
		PushSubscribed: user.HasPushSubscription(),
		CreatedAt:      user.CreatedAt,
	}
}
