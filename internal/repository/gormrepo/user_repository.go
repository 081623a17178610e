package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"usuarios-api/internal/domain"
	"usuarios-api/internal/repository"
)

// userRecord is the row shape of the usuarios table.
type userRecord struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Nombre    string `gorm:"not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string {
	return "usuarios"
}

// BeforeCreate assigns the opaque identifier for new rows.
func (u *userRecord) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&userRecord{}); err != nil {
		return fmt.Errorf("migrate usuarios table: %w", err)
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", translateError(err))
	}

	users := make([]domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, translateError(err))
	}
	user := record.toDomain()
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	record := userRecord{
		Nombre:   user.Nombre,
		Email:    user.Email,
		Password: user.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("insert user: %w", translateError(err))
	}
	*user = record.toDomain()
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		if changes.Empty() {
			return nil
		}
		if err := tx.Model(&record).Updates(changesToColumns(changes)).Error; err != nil {
			return err
		}
		return tx.First(&record, "id = ?", id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, translateError(err))
	}
	user := record.toDomain()
	return &user, nil
}

// Delete removes the user and returns the row as it was before removal.
func (r *UserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&record)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, translateError(err))
	}
	user := record.toDomain()
	return &user, nil
}

func changesToColumns(changes domain.UserChanges) map[string]any {
	columns := make(map[string]any, 3)
	if changes.Nombre != nil {
		columns["nombre"] = *changes.Nombre
	}
	if changes.Email != nil {
		columns["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		columns["password"] = *changes.PasswordHash
	}
	return columns
}

// translateError maps ORM and driver failures onto the domain sentinels.
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrEmailTaken, err)
	case isEmailUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrEmailTaken, err)
	}
	return err
}

// isEmailUniqueViolation catches duplicates the dialector left untranslated,
// but only those raised by the email index.
func isEmailUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") && strings.Contains(msg, "email")
}

func (u userRecord) toDomain() domain.User {
	return domain.User{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
