package store

import (
	"context"
)

// QualityOfLife holds the optional per-metro quality metrics. A nil field means
// the metric is unknown for that metro, not zero.
type QualityOfLife struct {
	SchoolScore      *float64 `json:"school_score,omitempty"`
	CrimeRate        *float64 `json:"crime_rate,omitempty"`
	WeatherScore     *float64 `json:"weather_score,omitempty"`
	HealthcareScore  *float64 `json:"healthcare_score,omitempty"`
	WalkabilityScore *float64 `json:"walkability_score,omitempty"`
	AirQualityIndex  *float64 `json:"air_quality_index,omitempty"`
	CommuteTimeMins  *float64 `json:"commute_time_mins,omitempty"`
}

// Empty reports whether no metric is populated.
func (q *QualityOfLife) Empty() bool {
	if q == nil {
		return true
	}
	return q.SchoolScore == nil && q.CrimeRate == nil && q.WeatherScore == nil &&
		q.HealthcareScore == nil && q.WalkabilityScore == nil &&
		q.AirQualityIndex == nil && q.CommuteTimeMins == nil
}

// Metro is one metropolitan area joined with its cost record. QualityOfLife is
// nil when the metro has no quality-of-life row at all; record-level absence is
// scored differently from individual missing fields.
type Metro struct {
	ID       int64   `json:"metro_id"`
	Name     string  `json:"name"`
	State    string  `json:"state"`
	CBSACode string  `json:"cbsa_code"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`

	Population *int64 `json:"population,omitempty"`

	MedianRent       float64 `json:"median_rent_usd"`
	RPPIndex         float64 `json:"rpp_index"`
	EffTaxRate       float64 `json:"eff_tax_rate"`
	UtilitiesMonthly float64 `json:"utilities_monthly"`

	QualityOfLife *QualityOfLife `json:"quality_of_life,omitempty"`
}

type MetroFilter struct {
	PopulationMin int64
	State         string
}

// Health summarizes the data source's availability for the health endpoint.
type Health struct {
	Status          string `json:"status"`
	Metros          int    `json:"metros,omitempty"`
	MetrosWithCosts int    `json:"metros_with_costs,omitempty"`
	Error           string `json:"error,omitempty"`
}

type Store interface {
	FetchMetros(ctx context.Context, filter MetroFilter) ([]*Metro, error)
	GetMetrosByIDs(ctx context.Context, ids []int64) ([]*Metro, error)
	MetroCount(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) Health
	Close() error
}
