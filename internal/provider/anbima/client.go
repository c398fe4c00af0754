// Package anbima implements the reference-maturity provider against the
// Anbima secondary-market rates HTTP API.
package anbima

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dipulse/dipulse/internal/provider"
)

const dateLayout = "2006-01-02"

// Client fetches bond issuance maturities over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// bondRow is the wire format of one bond in the Anbima rates response. Only
// the maturity matters to the pipeline; the indicative rate is ignored.
type bondRow struct {
	MaturityDate string   `json:"maturity_date"`
	Rate         *float64 `json:"rate,omitempty"`
}

// Maturities returns the issuance maturity dates of the given bond family for
// a reference date.
func (c *Client) Maturities(ctx context.Context, bond provider.BondType, referenceDate time.Time) ([]time.Time, error) {
	endpoint := fmt.Sprintf("%s/rates?bond=%s&date=%s",
		c.baseURL,
		url.QueryEscape(string(bond)),
		referenceDate.Format(dateLayout),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s maturities: %w", bond, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var rows []bondRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}

	out := make([]time.Time, 0, len(rows))
	for i, row := range rows {
		d, err := time.Parse(dateLayout, row.MaturityDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid maturity_date %q: %w", i, row.MaturityDate, err)
		}
		out = append(out, d)
	}

	return out, nil
}
