// Package b3 implements the futures snapshot provider against the B3
// market-data HTTP API.
package b3

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Client fetches DI1 futures snapshots over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. timeout bounds each
// request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// contractRow is the wire format of one futures contract in the API response.
// SettlementRate and CurrentRate are pointers so absent columns stay absent
// instead of decoding to zero.
type contractRow struct {
	ExpirationDate string   `json:"ExpirationDate"`
	SettlementRate *float64 `json:"SettlementRate,omitempty"`
	CurrentRate    *float64 `json:"CurrentRate,omitempty"`
}

// Snapshot fetches the raw DI1 table for a trade date.
//
// The result keeps the provider's column identity: a closed session yields
// SettlementRate, an open one CurrentRate. Rows missing both are carried as
// absent columns and will fail normalization, which is the intended signal
// for a malformed upstream payload.
func (c *Client) Snapshot(ctx context.Context, contractCode string, referenceDate time.Time) (models.RawSnapshot, error) {
	endpoint := fmt.Sprintf("%s/futures?contract=%s&date=%s",
		c.baseURL,
		url.QueryEscape(contractCode),
		referenceDate.Format(dateLayout),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.RawSnapshot{}, fmt.Errorf("build futures request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.RawSnapshot{}, fmt.Errorf("fetch futures snapshot: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.RawSnapshot{}, fmt.Errorf("futures endpoint returned status %d", resp.StatusCode)
	}

	var rows []contractRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return models.RawSnapshot{}, fmt.Errorf("decode futures response: %w", err)
	}

	return rowsToSnapshot(contractCode, referenceDate, rows)
}

// rowsToSnapshot converts wire rows into the column-keyed raw table. A column
// is materialized only when at least one row carries it, and every row must
// then carry it: a gap would otherwise turn into a silent 0% vertex.
func rowsToSnapshot(contractCode string, referenceDate time.Time, rows []contractRow) (models.RawSnapshot, error) {
	snap := models.RawSnapshot{
		ContractCode:  contractCode,
		ReferenceDate: models.DateKey(referenceDate),
		Unit:          models.UnitFraction,
		Maturities:    make([]time.Time, 0, len(rows)),
		Columns:       map[string][]float64{},
	}

	hasSettlement := false
	hasCurrent := false
	for _, row := range rows {
		if row.SettlementRate != nil {
			hasSettlement = true
		}
		if row.CurrentRate != nil {
			hasCurrent = true
		}
	}

	for i, row := range rows {
		maturity, err := time.Parse(dateLayout, row.ExpirationDate)
		if err != nil {
			return models.RawSnapshot{}, fmt.Errorf("row %d: invalid ExpirationDate %q: %w", i, row.ExpirationDate, err)
		}
		snap.Maturities = append(snap.Maturities, maturity)

		if hasSettlement {
			if row.SettlementRate == nil {
				return models.RawSnapshot{}, fmt.Errorf("row %d (%s): missing SettlementRate in settlement payload", i, row.ExpirationDate)
			}
			snap.Columns[models.ColumnSettlementRate] = append(
				snap.Columns[models.ColumnSettlementRate], *row.SettlementRate)
		}
		if hasCurrent {
			if row.CurrentRate == nil {
				return models.RawSnapshot{}, fmt.Errorf("row %d (%s): missing CurrentRate in intraday payload", i, row.ExpirationDate)
			}
			snap.Columns[models.ColumnCurrentRate] = append(
				snap.Columns[models.ColumnCurrentRate], *row.CurrentRate)
		}
	}

	return snap, nil
}
