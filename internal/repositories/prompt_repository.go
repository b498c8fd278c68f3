package repositories

import (
	"context"
	"fmt"

	"aikit/internal/models"

	"gorm.io/gorm"
)

// PromptRepository persists operator-managed prompt templates.
type PromptRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.PromptTemplate, error)
	GetByID(ctx context.Context, id uint) (*models.PromptTemplate, error)
	GetBySlug(ctx context.Context, slug string) (*models.PromptTemplate, error)
	Create(ctx context.Context, p *models.PromptTemplate) error
	Update(ctx context.Context, p *models.PromptTemplate) error
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) List(ctx context.Context, includeInactive bool) ([]models.PromptTemplate, error) {
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var prompts []models.PromptTemplate
	if err := query.Order("slug ASC").Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

func (r *promptRepository) GetByID(ctx context.Context, id uint) (*models.PromptTemplate, error) {
	var p models.PromptTemplate
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return &p, nil
}

func (r *promptRepository) GetBySlug(ctx context.Context, slug string) (*models.PromptTemplate, error) {
	var p models.PromptTemplate
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return &p, nil
}

func (r *promptRepository) Create(ctx context.Context, p *models.PromptTemplate) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

func (r *promptRepository) Update(ctx context.Context, p *models.PromptTemplate) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return nil
}
