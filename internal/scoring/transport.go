package scoring

import (
	"github.com/livebetter-hq/livebetter/internal/errs"
)

// Mode is the user's stated transport lifestyle. It drives the essential
// transport cost and, for bike/walk, re-shapes the result list after scoring.
type Mode string

const (
	ModePublicTransit Mode = "public_transit"
	ModeCar           Mode = "car"
	ModeBikeWalk      Mode = "bike_walk"
)

func (m Mode) Valid() bool {
	switch m {
	case ModePublicTransit, ModeCar, ModeBikeWalk:
		return true
	}
	return false
}

// Bike/walk thresholds: metros below the cutoff are excluded from results,
// metros above the boost threshold get a capped composite multiplier.
const (
	bikeWalkCutoff   = 50.0
	bikeWalkBoostMin = 75.0
	bikeWalkBoost    = 1.15
	transitDiscount  = 0.004 // per walkability point
)

// ModeTransportCost returns the monthly transport cost for the given mode.
//
//   - public_transit: 100 + 40/person, discounted for walkable metros down to
//     a floor of 60% of base (fares replace fewer trips where walking works).
//   - car: 450 + 100/person, flat.
//   - bike_walk: flat 50.
func ModeTransportCost(mode Mode, familySize int, walkability *float64) (float64, error) {
	if familySize < 1 {
		return 0, errs.InvalidInput("family_size must be >= 1, got %d", familySize)
	}
	switch mode {
	case ModePublicTransit:
		base := 100.0 + 40.0*float64(familySize)
		factor := 1.0
		if walkability != nil {
			factor = 1.0 - transitDiscount*clamp(*walkability, 0, 100)
		}
		return base * factor, nil
	case ModeCar:
		return 450.0 + 100.0*float64(familySize), nil
	case ModeBikeWalk:
		return 50.0, nil
	}
	return 0, errs.InvalidInput("unknown transport_mode %q", mode)
}

// ApplyModePolicy reshapes already-scored results for the bike/walk mode:
// metros without sufficient walkability are dropped, highly walkable ones get
// a boosted composite score capped at 1.0. Filtering happens before boosting;
// the caller sorts afterwards. Other modes pass through untouched.
func ApplyModePolicy(results []*ScoredMetro, mode Mode) []*ScoredMetro {
	if mode != ModeBikeWalk {
		return results
	}
	kept := results[:0]
	for _, sm := range results {
		if sm.walkability == nil || *sm.walkability < bikeWalkCutoff {
			continue
		}
		kept = append(kept, sm)
	}
	for _, sm := range kept {
		if *sm.walkability > bikeWalkBoostMin {
			sm.Score = round4(min(sm.Score*bikeWalkBoost, 1.0))
		}
	}
	return kept
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
