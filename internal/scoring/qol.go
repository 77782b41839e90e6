package scoring

import (
	"github.com/livebetter-hq/livebetter/internal/store"
)

// Neutral is the normalized value substituted for a missing metric so a single
// absent field neither zeroes nor biases the composite.
const Neutral = 0.5

// Crime rates are clamped to this band (crimes per 100k) before inversion.
const (
	crimeRateLow  = 200.0
	crimeRateHigh = 800.0
)

// NormalizedQOL holds the five quality-of-life sub-scores on a common 0–1
// scale, higher always better.
type NormalizedQOL struct {
	Schools     float64 `json:"schools"`
	Safety      float64 `json:"safety"`
	Weather     float64 `json:"weather"`
	Healthcare  float64 `json:"healthcare"`
	Walkability float64 `json:"walkability"`
}

// NormalizeQOL maps a metro's raw quality-of-life record onto comparable 0–1
// scores. A nil record returns nil — record-level absence routes the composite
// down its affordability-only path, which is distinct from individual fields
// defaulting to Neutral.
func NormalizeQOL(q *store.QualityOfLife) *NormalizedQOL {
	if q == nil {
		return nil
	}
	return &NormalizedQOL{
		Schools:     normalizeRange(q.SchoolScore, 0, 100),
		Safety:      invert(normalizeRange(q.CrimeRate, crimeRateLow, crimeRateHigh), q.CrimeRate),
		Weather:     normalizeRange(q.WeatherScore, 0, 100),
		Healthcare:  normalizeRange(q.HealthcareScore, 0, 100),
		Walkability: normalizeRange(q.WalkabilityScore, 0, 100),
	}
}

// normalizeRange linearly scales v from [lo, hi] onto [0, 1], saturating at
// both ends. Missing values normalize to Neutral.
func normalizeRange(v *float64, lo, hi float64) float64 {
	if v == nil {
		return Neutral
	}
	return (clamp(*v, lo, hi) - lo) / (hi - lo)
}

// invert flips a normalized metric where lower raw values are better, leaving
// the missing-value Neutral untouched.
func invert(normalized float64, raw *float64) float64 {
	if raw == nil {
		return normalized
	}
	return 1.0 - normalized
}
