// Package notification implements the admin broadcast log and the per-user
// inbox.
package notification

import (
	"context"
	"errors"

	"aikit/internal/models"
	"aikit/internal/repositories"
)

var ErrEmptyMessage = errors.New("title and body are required")

type BroadcastInput struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	TargetUser *uint  `json:"target_user,omitempty"`
}

type Service interface {
	Broadcast(ctx context.Context, adminID uint, in BroadcastInput) (*models.AdminNotification, error)
	ListBroadcasts(ctx context.Context, limit, offset int) ([]models.AdminNotification, int64, error)
	UpdateBroadcast(ctx context.Context, id uint, title, body string) (*models.AdminNotification, error)

	Inbox(ctx context.Context, userID uint, limit int) ([]models.UserNotification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type service struct {
	repo  repositories.NotificationRepository
	users repositories.UserRepository
}

func NewService(repo repositories.NotificationRepository, users repositories.UserRepository) Service {
	if repo == nil {
		panic("notification repo is required")
	}
	if users == nil {
		panic("user repo is required")
	}
	return &service{repo: repo, users: users}
}

// Broadcast writes the log entry and fans out inbox rows, to one user or to
// everyone.
func (s *service) Broadcast(ctx context.Context, adminID uint, in BroadcastInput) (*models.AdminNotification, error) {
	if in.Title == "" || in.Body == "" {
		return nil, ErrEmptyMessage
	}

	n := &models.AdminNotification{
		Title:      in.Title,
		Body:       in.Body,
		TargetUser: in.TargetUser,
		CreatedBy:  adminID,
	}

	var recipients []uint
	if in.TargetUser != nil {
		if _, err := s.users.GetByID(ctx, *in.TargetUser); err != nil {
			return nil, err
		}
		recipients = []uint{*in.TargetUser}
	} else {
		ids, err := s.users.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		recipients = ids
	}

	inbox := make([]models.UserNotification, 0, len(recipients))
	for _, id := range recipients {
		inbox = append(inbox, models.UserNotification{
			UserID: id,
			Title:  in.Title,
			Body:   in.Body,
		})
	}

	if err := s.repo.CreateBroadcast(ctx, n, inbox); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) ListBroadcasts(ctx context.Context, limit, offset int) ([]models.AdminNotification, int64, error) {
	return s.repo.ListBroadcasts(ctx, limit, offset)
}

func (s *service) UpdateBroadcast(ctx context.Context, id uint, title, body string) (*models.AdminNotification, error) {
	n, err := s.repo.GetBroadcast(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		n.Title = title
	}
	if body != "" {
		n.Body = body
	}
	if err := s.repo.UpdateBroadcast(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Inbox(ctx context.Context, userID uint, limit int) ([]models.UserNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListInbox(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
