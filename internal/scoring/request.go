package scoring

import (
	"strconv"

	"github.com/livebetter-hq/livebetter/internal/errs"
)

// RankRequest is the full parameter set for one ranking call. It is immutable
// once validated; the same effective parameters always produce the same cache
// key regardless of how the caller assembled them.
type RankRequest struct {
	Salary        int     `json:"salary"`
	FamilySize    int     `json:"family_size"`
	RentCapPct    float64 `json:"rent_cap_pct"`
	PopulationMin int64   `json:"population_min"`
	Limit         int     `json:"limit"`
	State         string  `json:"state,omitempty"`
	TransportMode Mode    `json:"transport_mode"`

	AffordabilityWeight float64 `json:"affordability_weight"`
	SchoolsWeight       float64 `json:"schools_weight"`
	SafetyWeight        float64 `json:"safety_weight"`
	WeatherWeight       float64 `json:"weather_weight"`
	HealthcareWeight    float64 `json:"healthcare_weight"`
	WalkabilityWeight   float64 `json:"walkability_weight"`
}

// ApplyDefaults fills the zero values a sparse request leaves behind. The
// affordability weight defaults to 10; JSON cannot distinguish an explicit
// zero from absence, so a zero affordability weight is always lifted to the
// default. The five quality-of-life weights default to 0.
func (r *RankRequest) ApplyDefaults() {
	if r.FamilySize == 0 {
		r.FamilySize = 1
	}
	if r.RentCapPct == 0 {
		r.RentCapPct = 0.30
	}
	if r.Limit == 0 {
		r.Limit = 50
	}
	if r.TransportMode == "" {
		r.TransportMode = ModePublicTransit
	}
	if r.AffordabilityWeight == 0 {
		r.AffordabilityWeight = 10
	}
}

// Validate enforces the documented bounds. The first violation is returned as
// an invalid-input error naming the field.
func (r *RankRequest) Validate() error {
	if r.Salary < 10000 || r.Salary > 1000000 {
		return errs.InvalidInput("salary must be between 10000 and 1000000, got %d", r.Salary)
	}
	if r.FamilySize < 1 || r.FamilySize > 10 {
		return errs.InvalidInput("family_size must be between 1 and 10, got %d", r.FamilySize)
	}
	if r.RentCapPct < 0.1 || r.RentCapPct > 0.6 {
		return errs.InvalidInput("rent_cap_pct must be between 0.1 and 0.6, got %g", r.RentCapPct)
	}
	if r.PopulationMin < 0 {
		return errs.InvalidInput("population_min must be >= 0, got %d", r.PopulationMin)
	}
	if r.Limit < 1 || r.Limit > 200 {
		return errs.InvalidInput("limit must be between 1 and 200, got %d", r.Limit)
	}
	if !r.TransportMode.Valid() {
		return errs.InvalidInput("transport_mode must be one of public_transit, car, bike_walk, got %q", r.TransportMode)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"affordability_weight", r.AffordabilityWeight},
		{"schools_weight", r.SchoolsWeight},
		{"safety_weight", r.SafetyWeight},
		{"weather_weight", r.WeatherWeight},
		{"healthcare_weight", r.HealthcareWeight},
		{"walkability_weight", r.WalkabilityWeight},
	} {
		if w.value < 0 || w.value > 10 {
			return errs.InvalidInput("%s must be between 0 and 10, got %g", w.name, w.value)
		}
	}
	return nil
}

// Weights collects the six importance weights for the composite scorer.
func (r *RankRequest) Weights() WeightSet {
	return WeightSet{
		Affordability: r.AffordabilityWeight,
		Schools:       r.SchoolsWeight,
		Safety:        r.SafetyWeight,
		Weather:       r.WeatherWeight,
		Healthcare:    r.HealthcareWeight,
		Walkability:   r.WalkabilityWeight,
	}
}

// CacheFields returns the canonical field set that keys the response cache.
// Every parameter that can change the output is included.
func (r *RankRequest) CacheFields() map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		"salary":               strconv.Itoa(r.Salary),
		"family_size":          strconv.Itoa(r.FamilySize),
		"rent_cap_pct":         f(r.RentCapPct),
		"population_min":       strconv.FormatInt(r.PopulationMin, 10),
		"limit":                strconv.Itoa(r.Limit),
		"state":                r.State,
		"transport_mode":       string(r.TransportMode),
		"affordability_weight": f(r.AffordabilityWeight),
		"schools_weight":       f(r.SchoolsWeight),
		"safety_weight":        f(r.SafetyWeight),
		"weather_weight":       f(r.WeatherWeight),
		"healthcare_weight":    f(r.HealthcareWeight),
		"walkability_weight":   f(r.WalkabilityWeight),
	}
}
