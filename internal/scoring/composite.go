package scoring

// WeightSet carries the caller-chosen relative importance of each sub-score.
// Weights are free-form in [0, 10] and need not sum to any fixed total; the
// composite divides by their sum.
type WeightSet struct {
	Affordability float64 `json:"affordability_weight"`
	Schools       float64 `json:"schools_weight"`
	Safety        float64 `json:"safety_weight"`
	Weather       float64 `json:"weather_weight"`
	Healthcare    float64 `json:"healthcare_weight"`
	Walkability   float64 `json:"walkability_weight"`
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Affordability + w.Schools + w.Safety + w.Weather + w.Healthcare + w.Walkability
}

// CompositeScore blends the affordability sub-score with normalized
// quality-of-life scores using a weighted arithmetic mean.
//
// Two degenerate paths return the raw affordability score unweighted: a metro
// with no quality-of-life record at all (qol == nil), and an all-zero weight
// set. These are different conditions and both bypass the blend entirely.
func CompositeScore(affordability float64, qol *NormalizedQOL, w WeightSet) float64 {
	if qol == nil {
		return affordability
	}
	total := w.Sum()
	if total == 0 {
		return affordability
	}
	weighted := affordability*w.Affordability +
		qol.Schools*w.Schools +
		qol.Safety*w.Safety +
		qol.Weather*w.Weather +
		qol.Healthcare*w.Healthcare +
		qol.Walkability*w.Walkability
	return weighted / total
}
