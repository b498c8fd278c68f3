// Package prompt implements operator-managed prompt template CRUD.
package prompt

import (
	"context"
	"errors"

	"aikit/internal/models"
	"aikit/internal/repositories"
)

var ErrInvalidTemplate = errors.New("slug, title and body are required")

type CreateInput struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type UpdateInput struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]models.PromptTemplate, error)
	Create(ctx context.Context, adminID uint, in CreateInput) (*models.PromptTemplate, error)
	Update(ctx context.Context, adminID, id uint, in UpdateInput) (*models.PromptTemplate, error)
}

type service struct {
	repo repositories.PromptRepository
}

func NewService(repo repositories.PromptRepository) Service {
	if repo == nil {
		panic("prompt repo is required")
	}
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]models.PromptTemplate, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *service) Create(ctx context.Context, adminID uint, in CreateInput) (*models.PromptTemplate, error) {
	if in.Slug == "" || in.Title == "" || in.Body == "" {
		return nil, ErrInvalidTemplate
	}

	p := &models.PromptTemplate{
		Slug:      in.Slug,
		Title:     in.Title,
		Body:      in.Body,
		Active:    true,
		UpdatedBy: adminID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, adminID, id uint, in UpdateInput) (*models.PromptTemplate, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Body != nil {
		p.Body = *in.Body
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedBy = adminID

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
