package repository

import (
	"context"

	"usuarios-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Implementations report a missing record as domain.ErrUserNotFound and a
// duplicated email as domain.ErrEmailTaken; any other error is unexpected.
type UserRepository interface {
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
