package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/model"
)

type userRow struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"column:username"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	row := userRow{
		Username:     strings.TrimSpace(user.Username),
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &model.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         model.UserRole(row.Role),
		CreatedAt:    row.CreatedAt,
	}, nil
}
