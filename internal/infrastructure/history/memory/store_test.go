package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-risk-engine/internal/domain/purchase"
)

func entry(id, userID int64, amount float64) purchase.Purchase {
	return purchase.Purchase{
		ID:           id,
		UserID:       userID,
		Amount:       decimal.NewFromFloat(amount),
		MerchantName: "Grocery Mart",
		Timestamp:    time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestStoreAppendAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, entry(1, 7, 100)))
	require.NoError(t, store.Append(ctx, entry(2, 7, 200)))
	require.NoError(t, store.Append(ctx, entry(3, 8, 300)))

	history, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(1), history[0].ID)
	assert.Equal(t, int64(2), history[1].ID)
}

func TestStoreGetUnknownUser(t *testing.T) {
	store := NewStore()

	history, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, entry(1, 7, 100)))

	first, err := store.Get(ctx, 7)
	require.NoError(t, err)
	first[0].MerchantName = "mutated"

	second, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Grocery Mart", second[0].MerchantName)
}

func TestRepositorySaveAndGet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	p := entry(42, 7, 100)
	require.NoError(t, repo.Save(ctx, &p))

	loaded, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.True(t, p.Amount.Equal(loaded.Amount))
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, purchase.ErrPurchaseNotFound)
}
