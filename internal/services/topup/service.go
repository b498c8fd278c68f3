// Package topup implements the admin-mediated top-up approval workflow.
// A top-up is created pending, receives exactly one admin decision, and is
// terminal afterwards. No on-chain verification happens here; trust is
// deferred entirely to manual review.
package topup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"aikit/internal/models"
	"aikit/internal/repositories"
	"aikit/internal/services/ledger"
	"aikit/internal/validation"
)

type Service interface {
	Submit(ctx context.Context, userID uint, in SubmitInput) (*models.CreditTopup, error)
	ListMine(ctx context.Context, userID uint) (*UserTopups, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.CreditTopup, int64, error)
	Decide(ctx context.Context, adminID, topupID uint, action, note string) (*models.CreditTopup, error)
}

type service struct {
	topups   repositories.TopupRepository
	packages repositories.PackageRepository
	wallets  repositories.WalletRepository
	cache    Cache
}

// NewService creates a new top-up workflow service
func NewService(
	topups repositories.TopupRepository,
	packages repositories.PackageRepository,
	wallets repositories.WalletRepository,
	cache Cache,
) Service {
	if topups == nil {
		panic("topup repo is required")
	}
	if packages == nil {
		panic("package repo is required")
	}
	if wallets == nil {
		panic("wallet repo is required")
	}
	return &service{
		topups:   topups,
		packages: packages,
		wallets:  wallets,
		cache:    cache,
	}
}

func (s *service) Submit(ctx context.Context, userID uint, in SubmitInput) (*models.CreditTopup, error) {
	if err := validation.TxHash(in.TxHash); err != nil {
		return nil, ErrInvalidTxHash
	}
	if in.WalletNetwork == "" {
		return nil, ErrInvalidNetwork
	}

	pkg, err := s.packages.GetByID(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.Active {
		return nil, ErrPackageInactive
	}

	topup := &models.CreditTopup{
		UserID:        userID,
		PackageID:     pkg.ID,
		WalletNetwork: in.WalletNetwork,
		TxHash:        in.TxHash,
		FromAddress:   in.FromAddress,
		Amount:        in.Amount,
		Status:        models.TopupStatusPending,
	}
	if err := s.topups.Create(ctx, topup); err != nil {
		return nil, err
	}
	topup.Package = pkg
	return topup, nil
}

func (s *service) ListMine(ctx context.Context, userID uint) (*UserTopups, error) {
	topups, err := s.topups.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := 0.0
	wallet, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, err
	}
	if wallet != nil && wallet.Balance > 0 {
		balance = wallet.Balance
	}

	return &UserTopups{Topups: topups, WalletBalance: balance}, nil
}

func (s *service) List(ctx context.Context, status string, limit, offset int) ([]models.CreditTopup, int64, error) {
	return s.topups.ListByStatus(ctx, status, limit, offset)
}

func (s *service) Decide(ctx context.Context, adminID, topupID uint, action, note string) (*models.CreditTopup, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, ErrInvalidAction
	}

	topup, err := s.topups.GetByID(ctx, topupID)
	if err != nil {
		return nil, err
	}
	if topup.Status != models.TopupStatusPending {
		return nil, repositories.ErrTopupNotPending
	}

	switch action {
	case ActionReject:
		if err := s.topups.MarkDecided(ctx, topupID, models.TopupStatusRejected, adminID, note); err != nil {
			return nil, err
		}
	case ActionApprove:
		pkg := topup.Package
		if pkg == nil {
			pkg, err = s.packages.GetByID(ctx, topup.PackageID)
			if err != nil {
				return nil, err
			}
		}
		// The status flip and the wallet credit commit together: a retried
		// approval cannot double-credit because MarkDecided is guarded on
		// the pending status.
		err = s.topups.ExecuteInTransaction(func(topups repositories.TopupRepository, wallets repositories.WalletRepository) error {
			if err := topups.MarkDecided(ctx, topupID, models.TopupStatusApproved, adminID, note); err != nil {
				return err
			}
			return wallets.AddBalance(ctx, topup.UserID, float64(pkg.Credits))
		})
		if err != nil {
			return nil, fmt.Errorf("failed to approve top-up: %w", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, ledger.SummaryCacheKey(topup.UserID)); err != nil {
			log.Printf("failed to invalidate summary cache for user %d: %v", topup.UserID, err)
		}
	}

	return s.topups.GetByID(ctx, topupID)
}
