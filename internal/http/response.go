package http

import (
	"time"

	"usuarios-api/internal/domain"
)

type createUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserRequest fields are nil when absent from the body.
type updateUserRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse is the public view of a user. It has no password field.
type UserResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deleteUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Nombre:    user.Nombre,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
