package repositories

import (
	"context"

	"aikit/internal/models"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	IncrementTokenVersion(ctx context.Context, userID uint) error
	ListPaginated(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
}
