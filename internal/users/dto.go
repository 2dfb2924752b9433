package users

import (
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

// UserDTO is the public shape of a user; the password hash never leaves the service.
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// FromModel converts a persisted user into its public shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}
