// Package provider defines the contracts for the external market-data
// collaborators: the futures snapshot source (B3) and the reference-maturity
// source (Anbima). The pipeline never interprets their transport failures;
// errors propagate to the caller untouched.
package provider

import (
	"context"
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

// BondType identifies a pre-fixed treasury bond family whose issuance
// maturities anchor the curve vertices.
type BondType string

const (
	BondLTN  BondType = "LTN"   // zero-coupon
	BondNTNF BondType = "NTN-F" // fixed-rate coupon
)

// FuturesProvider supplies raw DI1 rate snapshots for a trade date. The
// snapshot carries either a settlement or a current rate column depending on
// whether the session for that date has closed; deciding which is the
// normalizer's job, not the provider's.
type FuturesProvider interface {
	Snapshot(ctx context.Context, contractCode string, referenceDate time.Time) (models.RawSnapshot, error)
}

// MaturityProvider supplies the known bond-issuance maturity dates for a
// reference date, used to restrict the futures curve to real vertices.
type MaturityProvider interface {
	Maturities(ctx context.Context, bond BondType, referenceDate time.Time) ([]time.Time, error)
}
