package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dipulse/dipulse/internal/bday"
	"github.com/dipulse/dipulse/internal/curve"
	"github.com/dipulse/dipulse/internal/domain/models"
	"github.com/dipulse/dipulse/internal/logger"
	"github.com/dipulse/dipulse/internal/provider"
	"github.com/dipulse/dipulse/internal/storage"
)

// nowFn is an indirection for the clock; tests can override this.
var nowFn = time.Now

// CurveService assembles the dashboard data: it acquires two DI1 snapshots,
// normalizes them against the known bond-issuance vertices, and computes the
// basis-point variation between them.
type CurveService interface {
	// Panel builds the full dashboard panel for the business days nearest to
	// startDate and finalDate.
	Panel(ctx context.Context, startDate, finalDate time.Time) (*models.CurvePanel, error)
	// Curve builds a single normalized curve for the business day nearest to
	// referenceDate.
	Curve(ctx context.Context, referenceDate time.Time) (models.RateTable, time.Time, error)
}

// Options carries the pipeline configuration the dashboards disagree on.
type Options struct {
	ContractCode string
	GroupByMonth bool
	RateScale    float64
	Session      bday.Session
}

type curveService struct {
	futures    provider.FuturesProvider
	maturities provider.MaturityProvider
	repo       storage.SnapshotRepository
	opts       Options
}

func NewCurveService(futures provider.FuturesProvider, maturities provider.MaturityProvider, repo storage.SnapshotRepository, opts Options) CurveService {
	return &curveService{
		futures:    futures,
		maturities: maturities,
		repo:       repo,
		opts:       opts,
	}
}

// Panel acquires everything concurrently, then runs the pure pipeline.
func (s *curveService) Panel(ctx context.Context, startDate, finalDate time.Time) (*models.CurvePanel, error) {
	start := bday.Roll(startDate)
	final := bday.Roll(finalDate)
	if final.Before(start) {
		return nil, fmt.Errorf("final date %s is before start date %s",
			final.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	// Anbima publishes reference rates after the session closes; when the
	// final date is still trading, the previous business day's vertices are
	// the latest available.
	today := bday.Roll(nowFn())
	anbimaDate := final
	if models.DateKey(final).Equal(models.DateKey(today)) {
		anbimaDate = bday.Offset(today, -1)
	}

	var (
		ltn, ntnf          []time.Time
		rawFinal, rawStart models.RawSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ltn, err = s.maturities.Maturities(gctx, provider.BondLTN, anbimaDate)
		return err
	})
	g.Go(func() (err error) {
		ntnf, err = s.maturities.Maturities(gctx, provider.BondNTNF, anbimaDate)
		return err
	})
	g.Go(func() (err error) {
		rawFinal, err = s.snapshotFor(gctx, final, today)
		return err
	})
	g.Go(func() (err error) {
		rawStart, err = s.snapshotFor(gctx, start, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	accepted := models.NewMaturityFilter(ltn, ntnf)
	normOpts := curve.Options{
		GroupByMonth: s.opts.GroupByMonth,
		RateScale:    s.opts.RateScale,
		Accepted:     accepted,
	}

	finalTable, err := curve.Normalize(rawFinal, normOpts)
	if err != nil {
		return nil, fmt.Errorf("normalize final snapshot: %w", err)
	}
	startTable, err := curve.Normalize(rawStart, normOpts)
	if err != nil {
		return nil, fmt.Errorf("normalize initial snapshot: %w", err)
	}

	variations, err := curve.ComputeVariation(finalTable, startTable)
	if err != nil {
		return nil, err
	}

	return &models.CurvePanel{
		StartDate:    start,
		FinalDate:    final,
		BusinessDays: bday.Count(start, final),
		Live:         finalTable.Live && s.opts.Session.InSession(nowFn()),
		Initial:      startTable,
		Final:        finalTable,
		Variations:   variations,
	}, nil
}

// Curve returns one normalized curve without the variation join, along with
// the business day it was actually built for. Vertex filtering still applies
// so the curve matches the panel's x axis.
func (s *curveService) Curve(ctx context.Context, referenceDate time.Time) (models.RateTable, time.Time, error) {
	date := bday.Roll(referenceDate)
	today := bday.Roll(nowFn())

	anbimaDate := date
	if models.DateKey(date).Equal(models.DateKey(today)) {
		anbimaDate = bday.Offset(today, -1)
	}

	var (
		ltn, ntnf []time.Time
		raw       models.RawSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ltn, err = s.maturities.Maturities(gctx, provider.BondLTN, anbimaDate)
		return err
	})
	g.Go(func() (err error) {
		ntnf, err = s.maturities.Maturities(gctx, provider.BondNTNF, anbimaDate)
		return err
	})
	g.Go(func() (err error) {
		raw, err = s.snapshotFor(gctx, date, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.RateTable{}, time.Time{}, err
	}

	table, err := curve.Normalize(raw, curve.Options{
		GroupByMonth: s.opts.GroupByMonth,
		RateScale:    s.opts.RateScale,
		Accepted:     models.NewMaturityFilter(ltn, ntnf),
	})
	if err != nil {
		return models.RateTable{}, time.Time{}, err
	}
	return table, date, nil
}

// snapshotFor resolves one day's raw snapshot. Past days are settled facts
// and go through the repository (fetch-and-persist on miss); today goes to
// the provider directly, since during the session the rates are still moving.
func (s *curveService) snapshotFor(ctx context.Context, date, today time.Time) (models.RawSnapshot, error) {
	if models.DateKey(date).Equal(models.DateKey(today)) {
		return s.futures.Snapshot(ctx, s.opts.ContractCode, date)
	}

	stored, err := s.repo.GetSnapshot(s.opts.ContractCode, date)
	if err != nil {
		return models.RawSnapshot{}, fmt.Errorf("load stored snapshot: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}

	raw, err := s.futures.Snapshot(ctx, s.opts.ContractCode, date)
	if err != nil {
		return models.RawSnapshot{}, err
	}
	s.persistSettled(raw, date)
	return raw, nil
}

// persistSettled stores a fetched settled snapshot for reuse. Persistence is
// an optimization; failures are logged and the render continues.
func (s *curveService) persistSettled(raw models.RawSnapshot, date time.Time) {
	rates, ok := raw.Columns[models.ColumnSettlementRate]
	if !ok {
		return
	}
	records := make([]models.RateRecord, 0, len(raw.Maturities))
	for i, maturity := range raw.Maturities {
		if i >= len(rates) {
			break
		}
		records = append(records, models.RateRecord{MaturityDate: models.DateKey(maturity), Rate: rates[i]})
	}
	if err := s.repo.InsertSnapshotBatch(s.opts.ContractCode, date, records); err != nil {
		logger.L().Warn().Err(err).Str("date", date.Format("2006-01-02")).Msg("persist snapshot failed")
		return
	}
	if err := s.repo.UpsertSnapshotLog(date, s.opts.ContractCode, len(records)); err != nil {
		logger.L().Warn().Err(err).Str("date", date.Format("2006-01-02")).Msg("update snapshot log failed")
	}
}
