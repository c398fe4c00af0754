package storage

import (
	"database/sql"
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// SnapshotRepository defines the contract for persisting settled DI1 rate
// snapshots. Settled rates are immutable facts, so a stored snapshot can be
// served forever instead of re-fetching from the provider. Live (intraday)
// snapshots are never persisted.
type SnapshotRepository interface {
	InsertSnapshotBatch(contractCode string, referenceDate time.Time, records []models.RateRecord) error
	GetSnapshot(contractCode string, referenceDate time.Time) (*models.RawSnapshot, error)
	HasSnapshotForDate(contractCode string, referenceDate time.Time) (bool, error)
	UpsertSnapshotLog(referenceDate time.Time, contractCode string, rowCount int) error
	DeleteSnapshotByDate(contractCode string, referenceDate time.Time) error
}

type snapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// InsertSnapshotBatch inserts a full day's settlement rates in a single
// transaction using COPY.
func (r *snapshotRepository) InsertSnapshotBatch(contractCode string, referenceDate time.Time, records []models.RateRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"rate_snapshots",
		"contract_code",
		"reference_date",
		"maturity_date",
		"settlement_rate",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.Exec(
			contractCode,
			referenceDate,
			rec.MaturityDate,
			rec.Rate,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetSnapshot rebuilds the stored raw snapshot for a day, or nil when the day
// was never persisted. Stored rows always represent the settlement column.
func (r *snapshotRepository) GetSnapshot(contractCode string, referenceDate time.Time) (*models.RawSnapshot, error) {
	rows, err := r.db.Query(`
		SELECT maturity_date, settlement_rate
		FROM rate_snapshots
		WHERE contract_code = $1 AND reference_date = $2
		ORDER BY maturity_date
	`, contractCode, referenceDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	snap := &models.RawSnapshot{
		ContractCode:  contractCode,
		ReferenceDate: referenceDate,
		Unit:          models.UnitFraction,
		Columns:       map[string][]float64{},
	}

	for rows.Next() {
		var maturity time.Time
		var rate float64
		if err := rows.Scan(&maturity, &rate); err != nil {
			return nil, err
		}
		snap.Maturities = append(snap.Maturities, maturity)
		snap.Columns[models.ColumnSettlementRate] = append(snap.Columns[models.ColumnSettlementRate], rate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(snap.Maturities) == 0 {
		return nil, nil
	}
	return snap, nil
}

// HasSnapshotForDate checks if a snapshot was already recorded for a given
// contract and business day.
func (r *snapshotRepository) HasSnapshotForDate(contractCode string, referenceDate time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM snapshot_log WHERE contract_code = $1 AND reference_date = $2)`,
		contractCode, referenceDate,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertSnapshotLog records (or updates) a snapshot entry for a given day.
func (r *snapshotRepository) UpsertSnapshotLog(referenceDate time.Time, contractCode string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO snapshot_log (reference_date, contract_code, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (contract_code, reference_date)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  fetched_at = NOW()
	`, referenceDate, contractCode, rowCount)
	return err
}

// DeleteSnapshotByDate removes all stored rates for a given contract and day.
func (r *snapshotRepository) DeleteSnapshotByDate(contractCode string, referenceDate time.Time) error {
	_, err := r.db.Exec(
		`DELETE FROM rate_snapshots WHERE contract_code = $1 AND reference_date = $2`,
		contractCode, referenceDate,
	)
	return err
}
