package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepay-sim/domain"
)

func TestMockCache(t *testing.T) {
	cache := NewMockCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
	assert.Equal(t, 1, cache.Sets)
}

func TestSweepRepositoryMemory_EvictsOldest(t *testing.T) {
	repo := NewSweepRepositoryMemory(2)

	reports := []domain.SweepReport{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	for _, r := range reports {
		require.NoError(t, repo.Save(r))
	}

	_, ok := repo.Get(reports[0].ID)
	assert.False(t, ok)
	for _, r := range reports[1:] {
		_, ok := repo.Get(r.ID)
		assert.True(t, ok)
	}
}

func TestSweepRepositoryMemory_ResaveKeepsSlot(t *testing.T) {
	repo := NewSweepRepositoryMemory(2)
	first := domain.SweepReport{ID: uuid.New()}
	second := domain.SweepReport{ID: uuid.New()}

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))
	require.NoError(t, repo.Save(first))

	_, ok := repo.Get(first.ID)
	assert.True(t, ok)
	_, ok = repo.Get(second.ID)
	assert.True(t, ok)
}

func TestLoanRepositoryMemory(t *testing.T) {
	repo := NewLoanRepositoryMemory()
	require.NoError(t, repo.Save(domain.LoanInput{Amount: 1}, domain.LoanResult{MonthlyPayment: 1}))
	assert.Equal(t, 1, repo.Len())
}
