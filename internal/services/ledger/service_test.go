package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"aikit/internal/models"
	"aikit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) GetMonthlyCredit(ctx context.Context, userID uint, monthStart time.Time) (*models.MonthlyCredit, error) {
	args := m.Called(ctx, userID, monthStart)
	if mc := args.Get(0); mc != nil {
		return mc.(*models.MonthlyCredit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepo) AddMonthlyUsage(ctx context.Context, userID uint, monthStart time.Time, quota, amount int) error {
	args := m.Called(ctx, userID, monthStart, quota, amount)
	return args.Error(0)
}

func (m *MockLedgerRepo) CreateUsageEvent(ctx context.Context, ev *models.UsageEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockLedgerRepo) SetUsageEventMeta(ctx context.Context, eventID uint, meta models.JSON) error {
	args := m.Called(ctx, eventID, meta)
	return args.Error(0)
}

func (m *MockLedgerRepo) ListUsageEvents(ctx context.Context, userID uint, since time.Time, limit int) ([]models.UsageEvent, error) {
	args := m.Called(ctx, userID, since, limit)
	if evs := args.Get(0); evs != nil {
		return evs.([]models.UsageEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepo) RecentUsageEvents(ctx context.Context, userID uint, limit int) ([]models.UsageEvent, error) {
	args := m.Called(ctx, userID, limit)
	if evs := args.Get(0); evs != nil {
		return evs.([]models.UsageEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepo) LifetimeUsedTotal(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepo) ApprovedTopups(ctx context.Context, userID uint) ([]models.CreditTopup, error) {
	args := m.Called(ctx, userID)
	if ts := args.Get(0); ts != nil {
		return ts.([]models.CreditTopup), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepo) AddBalance(ctx context.Context, userID uint, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockWalletRepo) Deduct(ctx context.Context, userID uint, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func newTestService(repo *MockLedgerRepo, wallets *MockWalletRepo) Service {
	return NewService(repo, wallets, nil, LedgerConfig{
		ToolCosts: map[string]int{"summarize": 3, "transcribe-youtube": 25},
	}, nil)
}

func TestToolCost(t *testing.T) {
	svc := newTestService(new(MockLedgerRepo), new(MockWalletRepo))

	assert.Equal(t, 3, svc.ToolCost("summarize"))
	assert.Equal(t, 25, svc.ToolCost("transcribe-youtube"))
	assert.Equal(t, DefaultCost, svc.ToolCost("unknown-tool"))
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2025, 3, 17, 15, 42, 9, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), MonthStart(ts))
}

func TestGetSummary_NewUser(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).Return(nil, nil)
	wallets.On("GetByUserID", mock.Anything, uint(1)).Return(nil, repositories.ErrWalletNotFound)
	repo.On("ListUsageEvents", mock.Anything, uint(1), mock.Anything, mock.Anything).Return([]models.UsageEvent{}, nil)
	repo.On("LifetimeUsedTotal", mock.Anything, uint(1)).Return(int64(0), nil)
	repo.On("ApprovedTopups", mock.Anything, uint(1)).Return([]models.CreditTopup{}, nil)

	summary, err := svc.GetSummary(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, DefaultMonthlyQuota, summary.MonthlyQuota)
	assert.Equal(t, 0, summary.FreeUsed)
	assert.Equal(t, DefaultMonthlyQuota, summary.FreeRemaining)
	assert.Equal(t, float64(0), summary.WalletBalance)
	assert.Equal(t, float64(DefaultMonthlyQuota), summary.TotalAvailable)
	assert.Equal(t, PlanFree, summary.Plan)
	repo.AssertExpectations(t)
}

func TestGetSummary_Arithmetic(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("GetMonthlyCredit", mock.Anything, uint(2), mock.Anything).
		Return(&models.MonthlyCredit{UserID: 2, MonthlyQuota: 100, Used: 40}, nil)
	wallets.On("GetByUserID", mock.Anything, uint(2)).
		Return(&models.Wallet{UserID: 2, Balance: 25.5}, nil)
	repo.On("ListUsageEvents", mock.Anything, uint(2), mock.Anything, mock.Anything).Return([]models.UsageEvent{
		{Credits: 30, Meta: models.JSON{}},
		{Credits: 30, Meta: models.JSON{"walletCharge": float64(20)}},
		{Credits: 0, Meta: models.JSON{"error": "provider failed"}},
	}, nil)
	repo.On("LifetimeUsedTotal", mock.Anything, uint(2)).Return(int64(480), nil)
	starter := &models.CreditPackage{Code: "starter", USDPrice: 5, Credits: 2500}
	repo.On("ApprovedTopups", mock.Anything, uint(2)).Return([]models.CreditTopup{
		{UserID: 2, Package: starter},
	}, nil)

	summary, err := svc.GetSummary(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 40, summary.FreeUsed)
	assert.Equal(t, 60, summary.FreeRemaining)
	assert.Equal(t, 25.5, summary.WalletBalance)
	assert.Equal(t, 60, summary.TotalUsedMonth)
	assert.Equal(t, 20, summary.PaidUsedMonth)
	assert.Equal(t, 85.5, summary.TotalAvailable)
	assert.Equal(t, int64(480), summary.LifetimeUsed)
	assert.Equal(t, 2500, summary.PurchasedCredits)
	assert.Equal(t, 5.0, summary.PurchasedUSD)
	// Entry pack purchase alone classifies as pro.
	assert.Equal(t, PlanPro, summary.Plan)
}

func TestGetSummary_NonEntryTopupIsStandard(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("GetMonthlyCredit", mock.Anything, uint(3), mock.Anything).Return(nil, nil)
	wallets.On("GetByUserID", mock.Anything, uint(3)).Return(nil, repositories.ErrWalletNotFound)
	repo.On("ListUsageEvents", mock.Anything, uint(3), mock.Anything, mock.Anything).Return([]models.UsageEvent{}, nil)
	repo.On("LifetimeUsedTotal", mock.Anything, uint(3)).Return(int64(0), nil)
	small := &models.CreditPackage{Code: "mini", USDPrice: 2, Credits: 800}
	repo.On("ApprovedTopups", mock.Anything, uint(3)).Return([]models.CreditTopup{
		{UserID: 3, Package: small},
	}, nil)

	summary, err := svc.GetSummary(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, PlanStandard, summary.Plan)
}

func TestGetSummary_CacheHit(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	cache := new(MockCache)
	svc := NewService(repo, wallets, cache, LedgerConfig{}, nil)

	cache.On("Get", mock.Anything, SummaryCacheKey(7), mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*Summary)
			dest.Plan = PlanPro
			dest.WalletBalance = 12
		}).
		Return(true, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, PlanPro, summary.Plan)
	assert.Equal(t, float64(12), summary.WalletBalance)
	repo.AssertNotCalled(t, "ListUsageEvents", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckCredits(t *testing.T) {
	t.Run("sufficient across both balances", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		wallets := new(MockWalletRepo)
		svc := newTestService(repo, wallets)

		repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).
			Return(&models.MonthlyCredit{MonthlyQuota: 100, Used: 90}, nil)
		wallets.On("GetByUserID", mock.Anything, uint(1)).
			Return(&models.Wallet{Balance: 50}, nil)

		auth, err := svc.CheckCredits(context.Background(), 1, "transcribe-youtube")
		assert.NoError(t, err)
		assert.Equal(t, 25, auth.Cost)
		assert.Equal(t, 10, auth.FreeRemaining)
		assert.Equal(t, float64(60), auth.TotalAvailable)
	})

	t.Run("insufficient", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		wallets := new(MockWalletRepo)
		svc := newTestService(repo, wallets)

		repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).
			Return(&models.MonthlyCredit{MonthlyQuota: 100, Used: 100}, nil)
		wallets.On("GetByUserID", mock.Anything, uint(1)).
			Return(&models.Wallet{Balance: 10}, nil)

		auth, err := svc.CheckCredits(context.Background(), 1, "transcribe-youtube")
		assert.Nil(t, auth)
		ice, ok := IsInsufficientCredits(err)
		assert.True(t, ok)
		assert.Equal(t, 25, ice.Required)
		assert.Equal(t, float64(10), ice.Remaining)
	})
}

func TestLogUsageAndCharge_FreeFirstSplit(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	// 10 free credits left, the rest must come from the wallet.
	repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).
		Return(&models.MonthlyCredit{MonthlyQuota: 100, Used: 90}, nil)
	wallets.On("GetByUserID", mock.Anything, uint(1)).
		Return(&models.Wallet{Balance: 50}, nil)
	repo.On("CreateUsageEvent", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddMonthlyUsage", mock.Anything, uint(1), mock.Anything, 100, 10).Return(nil)
	wallets.On("Deduct", mock.Anything, uint(1), float64(20)).Return(nil)

	ev, err := svc.LogUsageAndCharge(context.Background(), 1, "transcribe-youtube", "video-url", models.UsageStatusSuccess, 30, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, ev.RequestID)
	assert.Equal(t, 30, ev.Credits)
	assert.Equal(t, 20, metaWalletCharge(ev.Meta))
	repo.AssertExpectations(t)
	wallets.AssertExpectations(t)
}

func TestLogUsageAndCharge_AllFree(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).Return(nil, nil)
	wallets.On("GetByUserID", mock.Anything, uint(1)).Return(nil, repositories.ErrWalletNotFound)
	repo.On("CreateUsageEvent", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddMonthlyUsage", mock.Anything, uint(1), mock.Anything, DefaultMonthlyQuota, 3).Return(nil)

	ev, err := svc.LogUsageAndCharge(context.Background(), 1, "summarize", "", models.UsageStatusSuccess, 3, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, metaWalletCharge(ev.Meta))
	wallets.AssertNotCalled(t, "Deduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogUsageAndCharge_ErrorEventNotCharged(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("CreateUsageEvent", mock.Anything, mock.Anything).Return(nil)

	ev, err := svc.LogUsageAndCharge(context.Background(), 1, "summarize", "", models.UsageStatusError, 0,
		models.JSON{"error": "provider failed"})
	assert.NoError(t, err)
	assert.Equal(t, 0, ev.Credits)
	repo.AssertNotCalled(t, "AddMonthlyUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	wallets.AssertNotCalled(t, "Deduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogUsageAndCharge_ChargeFailureIsIncomplete(t *testing.T) {
	repo := new(MockLedgerRepo)
	wallets := new(MockWalletRepo)
	svc := newTestService(repo, wallets)

	repo.On("GetMonthlyCredit", mock.Anything, uint(1), mock.Anything).
		Return(&models.MonthlyCredit{MonthlyQuota: 100, Used: 100}, nil)
	wallets.On("GetByUserID", mock.Anything, uint(1)).
		Return(&models.Wallet{Balance: 5}, nil)
	repo.On("CreateUsageEvent", mock.Anything, mock.Anything).Return(nil)
	wallets.On("Deduct", mock.Anything, uint(1), float64(3)).
		Return(repositories.ErrInsufficientBalance)

	ev, err := svc.LogUsageAndCharge(context.Background(), 1, "summarize", "", models.UsageStatusSuccess, 3, nil)
	assert.True(t, errors.Is(err, ErrChargeIncomplete))
	// The audit event still exists even though the charge did not land.
	assert.NotNil(t, ev)
}
