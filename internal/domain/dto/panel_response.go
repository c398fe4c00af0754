package dto

import (
	"github.com/dipulse/dipulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ChartPoint is one x/y pair of a chart series, with the maturity date as x.
type ChartPoint struct {
	X string  `json:"x" example:"2027-01-01"`
	Y float64 `json:"y" example:"12.5"`
}

// CurveResponse is the JSON body for a single yield curve.
//
// Rates are always serialized in percent regardless of the table's internal
// representation, matching how yield curves are charted.
type CurveResponse struct {
	ReferenceDate string       `json:"reference_date" example:"2026-08-28"`
	Live          bool         `json:"live" example:"false"`
	Points        []ChartPoint `json:"points"`
}

// PanelResponse is the JSON body for the full dashboard panel: variation bars
// in basis points plus both yield-curve lines in percent.
//
// RefreshSeconds is a hint for consumers: when Live is true the final curve is
// an intraday snapshot that changes, so re-request on that cadence; when false
// the panel is settled and stable.
type PanelResponse struct {
	StartDate      string       `json:"start_date" example:"2026-08-27"`
	FinalDate      string       `json:"final_date" example:"2026-08-28"`
	BusinessDays   int          `json:"business_days" example:"1"`
	Live           bool         `json:"live" example:"true"`
	RefreshSeconds int          `json:"refresh_seconds,omitempty" example:"60"`
	Variation      []ChartPoint `json:"variation_bps"`
	CurveInitial   []ChartPoint `json:"curve_initial"`
	CurveFinal     []ChartPoint `json:"curve_final"`
}

// NewCurveResponse maps a normalized table onto chart points.
func NewCurveResponse(referenceDate string, table models.RateTable) CurveResponse {
	return CurveResponse{
		ReferenceDate: referenceDate,
		Live:          table.Live,
		Points:        curvePoints(table),
	}
}

// NewPanelResponse maps a curve panel onto the wire format. refreshSeconds is
// only emitted for live panels.
func NewPanelResponse(panel *models.CurvePanel, refreshSeconds int) PanelResponse {
	resp := PanelResponse{
		StartDate:    panel.StartDate.Format(dateLayout),
		FinalDate:    panel.FinalDate.Format(dateLayout),
		BusinessDays: panel.BusinessDays,
		Live:         panel.Live,
		Variation:    make([]ChartPoint, 0, len(panel.Variations)),
		CurveInitial: curvePoints(panel.Initial),
		CurveFinal:   curvePoints(panel.Final),
	}
	if panel.Live {
		resp.RefreshSeconds = refreshSeconds
	}
	for _, v := range panel.Variations {
		resp.Variation = append(resp.Variation, ChartPoint{
			X: v.MaturityDate.Format(dateLayout),
			Y: v.VariationBps,
		})
	}
	return resp
}

// curvePoints converts table rows to percent-scaled chart points.
func curvePoints(table models.RateTable) []ChartPoint {
	factor := 1.0
	if table.Unit == models.UnitFraction {
		factor = 100
	}
	points := make([]ChartPoint, 0, len(table.Records))
	for _, rec := range table.Records {
		points = append(points, ChartPoint{
			X: rec.MaturityDate.Format(dateLayout),
			Y: rec.Rate * factor,
		})
	}
	return points
}
