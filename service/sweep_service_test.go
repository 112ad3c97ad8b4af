package service

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepay-sim/domain"
	"prepay-sim/repository"
)

type stubExplainer struct {
	calls int
}

func (s *stubExplainer) ExplainSweep(_ context.Context, r domain.SweepReport) string {
	s.calls++
	return "best month is fixed"
}

func newTestSweepService(t *testing.T, explainer Explainer) (*SweepService, *repository.MockCache) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	cache := repository.NewMockCache()
	return NewSweepService(cache, repository.NewSweepRepositoryMemory(10), explainer, 4, logger), cache
}

func TestRunSweep_RowsMatchSingleSimulations(t *testing.T) {
	p := exampleParams()
	p.TenureMonths = 36

	rows, err := RunSweep(context.Background(), p, 8)
	require.NoError(t, err)
	require.Len(t, rows, p.TenureMonths+1)

	for month, row := range rows {
		assert.Equal(t, month, row.PrepayMonth)

		single, err := Simulate(domain.ScenarioInput{ScenarioParams: p, PrepayMonth: month})
		require.NoError(t, err)
		assert.Equal(t, single.HouseValue, row.HouseValue)
		assert.Equal(t, single.FundValue, row.FundValue)
		assert.Equal(t, single.NetWorth, row.NetWorth)
		assert.Equal(t, single.LoanClosedMonth, row.LoanClosedMonth)
	}
}

func TestRunSweep_WorkerCountDoesNotChangeResult(t *testing.T) {
	p := exampleParams()
	p.TenureMonths = 60

	serial, err := RunSweep(context.Background(), p, 1)
	require.NoError(t, err)
	parallel, err := RunSweep(context.Background(), p, 16)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunSweep_InvalidParamsFailAtomically(t *testing.T) {
	p := exampleParams()
	p.TenureMonths = 0

	rows, err := RunSweep(context.Background(), p, 4)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, rows)
}

func TestRunSweep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := RunSweep(ctx, exampleParams(), 4)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rows)
}

func TestSummarize(t *testing.T) {
	rows := []domain.SweepRow{
		{PrepayMonth: 0, NetWorth: 100},
		{PrepayMonth: 1, NetWorth: 130},
		{PrepayMonth: 2, NetWorth: 90},
		{PrepayMonth: 3, NetWorth: 130},
	}

	summary := Summarize(rows, 12.5)

	assert.Equal(t, 12.5, summary.EMI)
	assert.Equal(t, 0, summary.Baseline.PrepayMonth)
	assert.Equal(t, 1, summary.Best.PrepayMonth, "ties go to the earliest month")
	assert.Equal(t, 2, summary.Worst.PrepayMonth)
	assert.Equal(t, 30.0, summary.GainOverBaseline)
}

func TestSweep_CachesAndStoresReport(t *testing.T) {
	explainer := &stubExplainer{}
	svc, cache := newTestSweepService(t, explainer)
	p := exampleParams()
	p.TenureMonths = 24

	first, err := svc.Sweep(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, first.Rows, 25)
	assert.Equal(t, "best month is fixed", first.Summary.Explanation)
	assert.Equal(t, 1, cache.Sets)

	emi, err := CalculateEMI(p.LoanPrincipal, p.AnnualLoanRate, p.TenureMonths)
	require.NoError(t, err)
	assert.Equal(t, emi, first.Summary.EMI)

	second, err := svc.Sweep(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, 1, cache.Sets, "second sweep should be served from cache")
	assert.Equal(t, 1, explainer.calls)

	stored, ok := svc.Report(first.ID)
	require.True(t, ok)
	assert.Equal(t, first.Summary, stored.Summary)
}

func TestSweep_UnreadableCacheEntryIsRecomputed(t *testing.T) {
	svc, cache := newTestSweepService(t, nil)
	p := exampleParams()
	p.TenureMonths = 12

	key, err := cacheKey(p)
	require.NoError(t, err)
	cache.Data[key] = "{not json"

	result, err := svc.Sweep(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 13)
	assert.Empty(t, result.Summary.Explanation)
}

func TestSweep_InvalidInputTouchesNothing(t *testing.T) {
	svc, cache := newTestSweepService(t, nil)
	p := exampleParams()
	p.HouseAnnualGrowth = -2

	_, err := svc.Sweep(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, cache.Sets)
}
