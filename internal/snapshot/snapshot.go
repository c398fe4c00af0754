// Package snapshot batch-fetches settled DI1 snapshots for recent business
// days and persists them, so API renders for past dates never depend on the
// provider being up.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dipulse/dipulse/internal/bday"
	"github.com/dipulse/dipulse/internal/curve"
	"github.com/dipulse/dipulse/internal/domain/models"
	"github.com/dipulse/dipulse/internal/logger"
	"github.com/dipulse/dipulse/internal/provider"
	"github.com/dipulse/dipulse/internal/storage"
)

const maxDays = 7

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.SnapshotRepository {
	return storage.NewSnapshotRepository(db)
}

// nowFn is an indirection for the clock; tests can override this.
var nowFn = time.Now

// FetchLastDays acquires and persists the settled snapshots for the last
// nDays business days (ending yesterday's business day, since today may still
// be trading).
//
// Behavior:
//   - nDays is clamped to 1..7.
//   - Days already recorded in the snapshot log are skipped unless force is
//     set; force deletes the stored day and refetches.
//   - Days are fetched concurrently, bounded by parallel (0 = auto up to CPU
//     count, max 7); the first error cancels the remaining fetches.
//   - A snapshot that turns out to be live (CurrentRate) is rejected: settled
//     history must come from closed sessions.
func FetchLastDays(ctx context.Context, futures provider.FuturesProvider, db *sql.DB, contractCode string, nDays, parallel int, force bool) error {
	repo := repoCtor(db)

	if nDays < 1 {
		nDays = 1
	}
	if nDays > maxDays {
		nDays = maxDays
	}
	dates := bday.LastN(nDays, bday.Offset(nowFn(), -1))

	logger.L().Info().Int("days", len(dates)).Str("contract", contractCode).Msg("snapshot fetch start")

	maxParallel := maxDays
	if parallel > 0 {
		if parallel > maxDays {
			parallel = maxDays
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("snapshot fetch configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, date := range dates {
		idx := i
		d := date
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			day := d.Format("2006-01-02")
			logger.L().Info().Int("idx", idx+1).Int("total", len(dates)).Str("date", day).Msg("day start")

			// Idempotency: skip if already fetched, unless force
			exists, err := repo.HasSnapshotForDate(contractCode, d)
			if err != nil {
				logger.L().Error().Str("date", day).Err(err).Msg("check snapshot log failed")
				return fmt.Errorf("day %s: check snapshot log: %w", day, err)
			}
			if exists && !force {
				logger.L().Info().Int("idx", idx+1).Int("total", len(dates)).Str("date", day).Bool("skipped", true).Msg("already fetched")
				return nil
			}
			if exists && force {
				if err := repo.DeleteSnapshotByDate(contractCode, d); err != nil {
					logger.L().Error().Str("date", day).Err(err).Msg("delete existing failed")
					return fmt.Errorf("day %s: delete existing: %w", day, err)
				}
			}

			total, err := fetchAndPersistDay(gctx, futures, repo, contractCode, d)
			if err != nil {
				logger.L().Error().Str("date", day).Dur("elapsed", time.Since(start)).Err(err).Msg("day failed")
				return fmt.Errorf("day %s: %w", day, err)
			}
			if err := repo.UpsertSnapshotLog(d, contractCode, total); err != nil {
				logger.L().Error().Str("date", day).Err(err).Msg("update snapshot log failed")
				return fmt.Errorf("day %s: upsert snapshot log: %w", day, err)
			}
			logger.L().Info().Int("idx", idx+1).Int("total", len(dates)).Str("date", day).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("day done")
			return nil
		})
	}

	return g.Wait()
}

// fetchAndPersistDay pulls one day's snapshot, checks it is settled, and
// stores the raw settlement column.
func fetchAndPersistDay(ctx context.Context, futures provider.FuturesProvider, repo storage.SnapshotRepository, contractCode string, d time.Time) (int, error) {
	raw, err := futures.Snapshot(ctx, contractCode, d)
	if err != nil {
		return 0, fmt.Errorf("fetch snapshot: %w", err)
	}

	// Schema check only; maturities and rates are stored untouched so the
	// pipeline re-normalizes stored days identically to fresh ones.
	table, err := curve.Normalize(raw, curve.Options{})
	if err != nil {
		return 0, err
	}
	if table.Live {
		return 0, fmt.Errorf("snapshot for %s is still live, session not settled", d.Format("2006-01-02"))
	}

	rates := raw.Columns[models.ColumnSettlementRate]
	records := make([]models.RateRecord, 0, len(raw.Maturities))
	for i, maturity := range raw.Maturities {
		if i >= len(rates) {
			break
		}
		records = append(records, models.RateRecord{MaturityDate: models.DateKey(maturity), Rate: rates[i]})
	}

	if err := repo.InsertSnapshotBatch(contractCode, d, records); err != nil {
		return 0, fmt.Errorf("persist snapshot: %w", err)
	}
	return len(records), nil
}
