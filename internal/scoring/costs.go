// Package scoring implements the affordability and composite scoring engine:
// essential-cost modeling, quality-of-life normalization, weighted blending,
// transport-mode policy, and the per-request ranking pipeline.
package scoring

import (
	"github.com/livebetter-hq/livebetter/internal/errs"
)

// Base monthly costs for a single person, scaled linearly with household size
// and by the regional price parity index.
const (
	GroceriesBaseSingle    = 350.0
	GroceriesPerAdditional = 150.0

	TransportBaseSingle    = 250.0
	TransportPerAdditional = 75.0
)

// BaseGroceries returns the monthly grocery cost before RPP adjustment.
func BaseGroceries(familySize int) (float64, error) {
	if familySize < 1 {
		return 0, errs.InvalidInput("family_size must be >= 1, got %d", familySize)
	}
	return GroceriesBaseSingle + float64(familySize-1)*GroceriesPerAdditional, nil
}

// BaseTransport returns the monthly transport cost before RPP adjustment. It
// is the mode-agnostic baseline; requests with a transport mode use the mode
// policy cost instead.
func BaseTransport(familySize int) (float64, error) {
	if familySize < 1 {
		return 0, errs.InvalidInput("family_size must be >= 1, got %d", familySize)
	}
	return TransportBaseSingle + float64(familySize-1)*TransportPerAdditional, nil
}
