package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transaction-risk-engine/internal/application/dto"
	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
	"transaction-risk-engine/internal/infrastructure/history/memory"
	"transaction-risk-engine/internal/infrastructure/ml"
	"transaction-risk-engine/internal/pkg/config"
)

func newProcessor(t *testing.T, store *memory.Store, repo *memory.Repository) *ProcessPurchaseUseCase {
	t.Helper()

	cfg := config.DefaultConfig()
	encoder := ml.NewEncoder(cfg.Risk.MaxAssumedAmount, false)
	classifier, err := ml.NewTrainedClassifier(encoder)
	require.NoError(t, err)

	engine, err := risk.NewDecisionEngine(
		store,
		risk.NewHistoryAnalyzer(),
		encoder,
		classifier,
		cfg.Risk.Thresholds(),
		zap.NewNop(),
	)
	require.NoError(t, err)

	return NewProcessPurchaseUseCase(engine, store, repo, nil, zap.NewNop(), cfg.Risk.DecisionTimeout)
}

func TestExecuteAssignsIDsAndRecords(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewRepository()
	uc := newProcessor(t, store, repo)
	ctx := context.Background()

	first, err := uc.Execute(ctx, dto.CreatePurchaseRequest{
		UserID:       7,
		Amount:       "2500.00",
		MerchantName: "Online Electronics Ltd",
		CardID:       "card-7",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Purchase.ID)
	assert.False(t, first.Purchase.Timestamp.IsZero())
	assert.True(t, first.Verdict.FirstPurchase)
	assert.True(t, first.Verdict.Fraud)
	assert.Equal(t, first.Verdict.Fraud, first.Purchase.Fraud)

	second, err := uc.Execute(ctx, dto.CreatePurchaseRequest{
		UserID:       7,
		Amount:       "40.00",
		MerchantName: "Online Electronics Ltd",
		CardID:       "card-7",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Purchase.ID)
	assert.False(t, second.Verdict.FirstPurchase)
	assert.False(t, second.Verdict.Fraud)

	history, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	loaded, err := uc.GetPurchase(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.UserID)
}

func TestExecuteRejectsInvalidAmount(t *testing.T) {
	uc := newProcessor(t, memory.NewStore(), memory.NewRepository())

	_, err := uc.Execute(context.Background(), dto.CreatePurchaseRequest{
		UserID:       7,
		Amount:       "not-a-number",
		MerchantName: "Grocery Mart",
	})
	assert.Error(t, err)
}

func TestExecuteRejectsInvalidPurchase(t *testing.T) {
	uc := newProcessor(t, memory.NewStore(), memory.NewRepository())

	_, err := uc.Execute(context.Background(), dto.CreatePurchaseRequest{
		UserID: 0,
		Amount: "10.00",
	})
	assert.ErrorIs(t, err, purchase.ErrMissingUserID)
}

func TestGetMissingPurchase(t *testing.T) {
	uc := newProcessor(t, memory.NewStore(), memory.NewRepository())

	_, err := uc.GetPurchase(context.Background(), 99)
	assert.ErrorIs(t, err, purchase.ErrPurchaseNotFound)
}
