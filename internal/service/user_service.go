package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"usuarios-api/internal/domain"
	"usuarios-api/internal/repository"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

// bcrypt only reads the first 72 bytes; longer passwords are cut to that.
const maxPasswordBytes = 72

// UserService describes user lifecycle operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Register(ctx context.Context, input domain.NewUser) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Remove(ctx context.Context, id string) (*domain.User, error)
	Ping(ctx context.Context) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Register(ctx context.Context, input domain.NewUser) (*domain.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Nombre:       input.Nombre,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies only the supplied fields. An empty password counts as absent.
func (s *userService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	changes := domain.UserChanges{
		Nombre: patch.Nombre,
		Email:  patch.Email,
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	return s.users.Update(ctx, id, changes)
}

func (s *userService) Remove(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Delete(ctx, id)
}

func (s *userService) Ping(ctx context.Context) error {
	return s.users.Ping(ctx)
}

func hashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
