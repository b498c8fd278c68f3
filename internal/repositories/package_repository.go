package repositories

import (
	"context"
	"fmt"

	"aikit/internal/models"

	"gorm.io/gorm"
)

// PackageRepository exposes the read-only credit package catalog.
type PackageRepository interface {
	ListActive(ctx context.Context) ([]models.CreditPackage, error)
	GetByID(ctx context.Context, id uint) (*models.CreditPackage, error)
	GetByCode(ctx context.Context, code string) (*models.CreditPackage, error)
	Create(ctx context.Context, pkg *models.CreditPackage) error
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) ListActive(ctx context.Context) ([]models.CreditPackage, error) {
	var packages []models.CreditPackage
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("usd_price ASC").
		Find(&packages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) GetByID(ctx context.Context, id uint) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	if err := r.db.WithContext(ctx).First(&pkg, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (r *packageRepository) GetByCode(ctx context.Context, code string) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&pkg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.CreditPackage) error {
	if err := r.db.WithContext(ctx).Create(pkg).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}
