package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"prepay-sim/domain"
	"prepay-sim/repository"
)

const sweepCachePrefix = "sweep:"

// Explainer turns a finished sweep into a short human explanation.
type Explainer interface {
	ExplainSweep(ctx context.Context, report domain.SweepReport) string
}

type SweepService struct {
	cache     repository.CacheRepository
	repo      repository.SweepRepository
	explainer Explainer
	workers   int
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewSweepService wires the sweep with its cache and history. explainer
// may be nil.
func NewSweepService(
	cache repository.CacheRepository,
	repo repository.SweepRepository,
	explainer Explainer,
	workers int,
	logger logrus.FieldLogger,
) *SweepService {
	if workers <= 0 {
		workers = DefaultSweepWorkers
	}
	return &SweepService{
		cache:     cache,
		repo:      repo,
		explainer: explainer,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

// RunSweep simulates every prepayment month from 0 to the tenure on at
// most workers goroutines. Rows are indexed by prepayment month.
func RunSweep(ctx context.Context, params domain.ScenarioParams, workers int) ([]domain.SweepRow, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	rows := make([]domain.SweepRow, params.TenureMonths+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for month := 0; month <= params.TenureMonths; month++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := Simulate(domain.ScenarioInput{ScenarioParams: params, PrepayMonth: month})
			if err != nil {
				return fmt.Errorf("prepay month %d: %w", month, err)
			}
			// each task owns rows[month]
			rows[month] = domain.SweepRow{
				PrepayMonth:     month,
				HouseValue:      res.HouseValue,
				FundValue:       res.FundValue,
				NetWorth:        res.NetWorth,
				LoanClosedMonth: res.LoanClosedMonth,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Summarize picks the baseline, best and worst rows. Ties go to the
// earliest month.
func Summarize(rows []domain.SweepRow, emi float64) domain.SweepSummary {
	if len(rows) == 0 {
		return domain.SweepSummary{EMI: emi}
	}

	best, worst := rows[0], rows[0]
	for _, row := range rows[1:] {
		if row.NetWorth > best.NetWorth {
			best = row
		}
		if row.NetWorth < worst.NetWorth {
			worst = row
		}
	}

	return domain.SweepSummary{
		EMI:              emi,
		Baseline:         rows[0],
		Best:             best,
		Worst:            worst,
		GainOverBaseline: best.NetWorth - rows[0].NetWorth,
	}
}

func cacheKey(params domain.ScenarioParams) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return sweepCachePrefix + hex.EncodeToString(sum[:]), nil
}

// Sweep runs (or fetches from cache) the full prepayment sweep for params
// and stores the report in the history.
func (s *SweepService) Sweep(ctx context.Context, params domain.ScenarioParams) (domain.SweepReport, error) {
	if err := ValidateParams(params); err != nil {
		return domain.SweepReport{}, err
	}

	log := s.logger.WithField("tenure_months", params.TenureMonths)

	key, err := cacheKey(params)
	if err != nil {
		return domain.SweepReport{}, fmt.Errorf("build cache key: %w", err)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		var report domain.SweepReport
		if err = json.Unmarshal([]byte(cached), &report); err == nil {
			log.WithField("report_id", report.ID).Debug("sweep served from cache")
			if err := s.repo.Save(report); err != nil {
				log.WithError(err).Warn("failed to save cached sweep report")
			}
			return report, nil
		}
		log.WithError(err).Warn("discarding unreadable cached sweep")
	}

	start := s.now()
	rows, err := RunSweep(ctx, params, s.workers)
	if err != nil {
		return domain.SweepReport{}, err
	}

	emi, err := CalculateEMI(params.LoanPrincipal, params.AnnualLoanRate, params.TenureMonths)
	if err != nil {
		return domain.SweepReport{}, err
	}

	report := domain.SweepReport{
		ID:        uuid.New(),
		CreatedAt: start.UTC(),
		Params:    params,
		Rows:      rows,
		Summary:   Summarize(rows, emi),
	}
	if s.explainer != nil {
		report.Summary.Explanation = s.explainer.ExplainSweep(ctx, report)
	}

	log.WithFields(logrus.Fields{
		"report_id":  report.ID,
		"best_month": report.Summary.Best.PrepayMonth,
		"elapsed":    s.now().Sub(start).String(),
	}).Info("sweep finished")

	if err := s.repo.Save(report); err != nil {
		log.WithError(err).Warn("failed to save sweep report")
	}

	if data, err := json.Marshal(report); err != nil {
		log.WithError(err).Warn("failed to encode sweep report for cache")
	} else if err := s.cache.Set(ctx, key, string(data)); err != nil {
		log.WithError(err).Warn("failed to cache sweep report")
	}

	return report, nil
}

// Report returns a previously computed sweep.
func (s *SweepService) Report(id uuid.UUID) (domain.SweepReport, bool) {
	return s.repo.Get(id)
}
