package scoring

import (
	"math"
	"testing"

	"github.com/livebetter-hq/livebetter/internal/errs"
)

func TestAffordabilityScoreCenter(t *testing.T) {
	score := AffordabilityScore(1500)
	if math.Abs(score-0.5) > 0.01 {
		t.Errorf("score at center = %f, want ~0.5", score)
	}
}

func TestAffordabilityScoreBounds(t *testing.T) {
	for di := -5000.0; di <= 10000; di += 100 {
		score := AffordabilityScore(di)
		if score <= 0 || score >= 1 {
			t.Fatalf("score(%f) = %f, want strictly in (0,1)", di, score)
		}
	}
}

func TestAffordabilityScoreMonotonic(t *testing.T) {
	prev := AffordabilityScore(-2000)
	for di := -1900.0; di <= 6000; di += 100 {
		score := AffordabilityScore(di)
		if score <= prev {
			t.Fatalf("score not increasing at di=%f: %f <= %f", di, score, prev)
		}
		prev = score
	}
}

func TestAffordabilityScoreExtremes(t *testing.T) {
	if s := AffordabilityScore(3000); s <= 0.9 {
		t.Errorf("score(3000) = %f, want > 0.9", s)
	}
	if s := AffordabilityScore(500); s >= 0.1 {
		t.Errorf("score(500) = %f, want < 0.1", s)
	}
	if s := AffordabilityScore(-500); s >= 0.01 {
		t.Errorf("score(-500) = %f, want < 0.01", s)
	}
}

func TestCalculateAffordabilitySingleInRaleigh(t *testing.T) {
	res, err := CalculateAffordability(AffordabilityInput{
		Salary:     90000,
		FamilySize: 1,
		RentCapPct: 0.3,
		EffTaxRate: 0.27,
		MedianRent: 1450,
		Utilities:  170,
		RPPIndex:   0.95,
		Mode:       ModePublicTransit,
	})
	if err != nil {
		t.Fatal(err)
	}

	// net monthly 5475, rent floored at 1642.50, groceries 332.50, transit 140
	if res.Essentials.Rent != 1642.5 {
		t.Errorf("rent = %f, want 1642.50", res.Essentials.Rent)
	}
	if res.Essentials.Groceries != 332.5 {
		t.Errorf("groceries = %f, want 332.50", res.Essentials.Groceries)
	}
	if res.Essentials.Transport != 140 {
		t.Errorf("transport = %f, want 140", res.Essentials.Transport)
	}
	if res.TotalEssentials != 2285 {
		t.Errorf("total essentials = %f, want 2285", res.TotalEssentials)
	}
	if math.Abs(res.NetMonthlyAdjusted-5763.16) > 0.01 {
		t.Errorf("net monthly adjusted = %f, want ~5763.16", res.NetMonthlyAdjusted)
	}
	if math.Abs(res.DiscretionaryIncome-3478.16) > 0.5 {
		t.Errorf("discretionary income = %f, want ~3478", res.DiscretionaryIncome)
	}
	if res.Score <= 0.9 {
		t.Errorf("score = %f, want > 0.9", res.Score)
	}
}

func TestCalculateAffordabilityExpensiveMetro(t *testing.T) {
	res, err := CalculateAffordability(AffordabilityInput{
		Salary:     80000,
		FamilySize: 2,
		RentCapPct: 0.3,
		EffTaxRate: 0.29,
		MedianRent: 3000,
		Utilities:  200,
		RPPIndex:   1.28,
		Mode:       ModePublicTransit,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.DiscretionaryIncome >= 1000 {
		t.Errorf("discretionary income = %f, want < 1000", res.DiscretionaryIncome)
	}
	if res.Score >= 0.5 {
		t.Errorf("score = %f, want < 0.5", res.Score)
	}
}

func TestRentFloor(t *testing.T) {
	// Median well below the budget ceiling: the floor wins.
	res, err := CalculateAffordability(AffordabilityInput{
		Salary:     120000,
		FamilySize: 1,
		RentCapPct: 0.3,
		EffTaxRate: 0.25,
		MedianRent: 800,
		Utilities:  150,
		RPPIndex:   1.0,
		Mode:       ModeCar,
	})
	if err != nil {
		t.Fatal(err)
	}
	floor := 120000 * 0.75 / 12 * 0.3 // 2250
	if res.Essentials.Rent != floor {
		t.Errorf("rent = %f, want floor %f", res.Essentials.Rent, floor)
	}

	// Median above the ceiling: the market rate wins.
	res, err = CalculateAffordability(AffordabilityInput{
		Salary:     120000,
		FamilySize: 1,
		RentCapPct: 0.3,
		EffTaxRate: 0.25,
		MedianRent: 3500,
		Utilities:  150,
		RPPIndex:   1.0,
		Mode:       ModeCar,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Essentials.Rent != 3500 {
		t.Errorf("rent = %f, want 3500", res.Essentials.Rent)
	}
}

func TestHigherRPPLowersScore(t *testing.T) {
	base := AffordabilityInput{
		Salary:     90000,
		FamilySize: 2,
		RentCapPct: 0.3,
		EffTaxRate: 0.27,
		MedianRent: 1800,
		Utilities:  180,
		Mode:       ModePublicTransit,
	}

	prevAdjusted := math.Inf(1)
	prevScore := 2.0
	for _, rpp := range []float64{0.9, 1.0, 1.1, 1.25, 1.4} {
		in := base
		in.RPPIndex = rpp
		res, err := CalculateAffordability(in)
		if err != nil {
			t.Fatal(err)
		}
		if res.NetMonthlyAdjusted >= prevAdjusted {
			t.Errorf("rpp %f: adjusted income %f did not decrease from %f", rpp, res.NetMonthlyAdjusted, prevAdjusted)
		}
		if res.Score >= prevScore {
			t.Errorf("rpp %f: score %f did not decrease from %f", rpp, res.Score, prevScore)
		}
		prevAdjusted = res.NetMonthlyAdjusted
		prevScore = res.Score
	}
}

func TestCalculateAffordabilityInvalidInputs(t *testing.T) {
	valid := AffordabilityInput{
		Salary: 90000, FamilySize: 1, RentCapPct: 0.3, EffTaxRate: 0.27,
		MedianRent: 1450, Utilities: 170, RPPIndex: 0.95, Mode: ModeCar,
	}

	in := valid
	in.FamilySize = 0
	if _, err := CalculateAffordability(in); !errs.IsInvalidInput(err) {
		t.Errorf("family_size 0: expected invalid input, got %v", err)
	}

	in = valid
	in.RPPIndex = 0
	if _, err := CalculateAffordability(in); !errs.IsInvalidInput(err) {
		t.Errorf("rpp 0: expected invalid input, got %v", err)
	}

	in = valid
	in.RPPIndex = -0.5
	if _, err := CalculateAffordability(in); !errs.IsInvalidInput(err) {
		t.Errorf("rpp negative: expected invalid input, got %v", err)
	}
}

func TestCalculateAffordabilityIdempotent(t *testing.T) {
	in := AffordabilityInput{
		Salary: 75000, FamilySize: 3, RentCapPct: 0.35, EffTaxRate: 0.26,
		MedianRent: 1600, Utilities: 190, RPPIndex: 1.02, Mode: ModePublicTransit,
	}
	first, err := CalculateAffordability(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CalculateAffordability(in)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}

func TestNoModeFallsBackToBaseTransport(t *testing.T) {
	res, err := CalculateAffordability(AffordabilityInput{
		Salary: 90000, FamilySize: 1, RentCapPct: 0.3, EffTaxRate: 0.27,
		MedianRent: 1450, Utilities: 170, RPPIndex: 0.95,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Essentials.Transport != 237.5 { // 250 * 0.95
		t.Errorf("transport = %f, want 237.50", res.Essentials.Transport)
	}
}
