package scoring

import (
	"math"

	"github.com/livebetter-hq/livebetter/internal/errs"
)

// Sigmoid parameters: $1,500/month discretionary income scores 0.5; the slope
// moves the score from ~0.05 to ~0.95 across roughly a $2,400 swing.
const (
	SigmoidCenter = 1500.0
	SigmoidSlope  = 400.0
)

// Essentials is the monthly essential-cost breakdown for one metro.
type Essentials struct {
	Rent      float64 `json:"rent"`
	Utilities float64 `json:"utilities"`
	Groceries float64 `json:"groceries"`
	Transport float64 `json:"transport"`
}

// AffordabilityInput bundles the user's financial situation with one metro's
// cost record. Walkability only matters for the public_transit discount; an
// empty Mode falls back to the RPP-scaled baseline transport cost.
type AffordabilityInput struct {
	Salary     float64
	FamilySize int
	RentCapPct float64
	EffTaxRate float64
	MedianRent float64
	Utilities  float64
	RPPIndex   float64

	Mode        Mode
	Walkability *float64
}

type AffordabilityResult struct {
	Score               float64    `json:"score"`
	DiscretionaryIncome float64    `json:"discretionary_income"`
	NetMonthlyAdjusted  float64    `json:"net_monthly_adjusted"`
	TotalEssentials     float64    `json:"total_essentials"`
	Essentials          Essentials `json:"essentials"`
}

// AffordabilityScore maps monthly discretionary income onto (0,1) with a
// sigmoid. Strictly increasing, saturating at the extremes without ever
// reaching 0 or 1 for finite input.
func AffordabilityScore(discretionaryIncome float64) float64 {
	exponent := -(discretionaryIncome - SigmoidCenter) / SigmoidSlope
	return 1.0 / (1.0 + math.Exp(exponent))
}

// CalculateAffordability is the pure scoring function for one (user, metro)
// pair. It returns the essential-cost breakdown, discretionary income, the
// RPP-deflated net income and the affordability sub-score.
//
// The rent term uses max(median, net*cap): the cap percentage acts as a floor
// that protects against observed medians far below what the household would
// realistically spend. It never pushes rent below the metro's market rate.
func CalculateAffordability(in AffordabilityInput) (*AffordabilityResult, error) {
	if in.FamilySize < 1 {
		return nil, errs.InvalidInput("family_size must be >= 1, got %d", in.FamilySize)
	}
	if in.RPPIndex <= 0 {
		return nil, errs.InvalidInput("rpp_index must be > 0, got %g", in.RPPIndex)
	}

	netMonthly := in.Salary * (1.0 - in.EffTaxRate) / 12.0

	rent := math.Max(in.MedianRent, netMonthly*in.RentCapPct)

	baseGroceries, err := BaseGroceries(in.FamilySize)
	if err != nil {
		return nil, err
	}
	groceries := baseGroceries * in.RPPIndex

	var transport float64
	if in.Mode != "" {
		transport, err = ModeTransportCost(in.Mode, in.FamilySize, in.Walkability)
		if err != nil {
			return nil, err
		}
	} else {
		base, err := BaseTransport(in.FamilySize)
		if err != nil {
			return nil, err
		}
		transport = base * in.RPPIndex
	}

	essentials := rent + in.Utilities + groceries + transport

	// Income re-expressed in national-average dollars.
	adjNetMonthly := netMonthly / in.RPPIndex

	discretionary := adjNetMonthly - essentials

	return &AffordabilityResult{
		Score:               round4(AffordabilityScore(discretionary)),
		DiscretionaryIncome: round2(discretionary),
		NetMonthlyAdjusted:  round2(adjNetMonthly),
		TotalEssentials:     round2(essentials),
		Essentials: Essentials{
			Rent:      round2(rent),
			Utilities: round2(in.Utilities),
			Groceries: round2(groceries),
			Transport: round2(transport),
		},
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
