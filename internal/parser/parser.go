// Package parser turns free-text living preferences into a structured ranking
// request. When an LLM endpoint is configured it does the extraction; a
// rule-based parser covers the rest.
package parser

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/livebetter-hq/livebetter/internal/llm"
	"github.com/livebetter-hq/livebetter/internal/scoring"
)

const systemPrompt = `You are a helpful assistant that converts natural language descriptions of living preferences into structured data for a city affordability tool.

Extract the following information from the user's text and return ONLY a JSON object with these exact fields:
- salary (number, 10000-1000000): annual pre-tax salary in USD
- family_size (number, 1-10): number of people in household
- rent_cap_pct (number, 0.1-0.6): maximum rent as % of income (default 0.3)
- population_min (number): minimum city population filter
- limit (number, 1-200): max number of results (default 50)
- transport_mode (string, "public_transit"/"car"/"bike_walk"): transportation preference
- affordability_weight (number, 0-10): how much affordability matters (default 10)
- schools_weight (number, 0-10): how much school quality matters (default 0)
- safety_weight (number, 0-10): how much safety matters (default 0)
- weather_weight (number, 0-10): how much weather matters (default 0)
- healthcare_weight (number, 0-10): how much healthcare matters (default 0)
- walkability_weight (number, 0-10): how much walkability matters (default 0)

If salary is mentioned with a "k" suffix, multiply by 1000. If a field is not
mentioned, use its default. Return ONLY valid JSON, no other text.`

type Parser struct {
	llm    llm.Client
	logger *slog.Logger
}

// New builds a Parser. A nil llm client means rule-based parsing only.
func New(client llm.Client, logger *slog.Logger) *Parser {
	return &Parser{llm: client, logger: logger}
}

// Parse extracts a RankRequest from free text. LLM failures fall back to the
// rule-based parser rather than failing the call.
func (p *Parser) Parse(ctx context.Context, text string) (scoring.RankRequest, error) {
	if p.llm != nil {
		req, err := p.parseLLM(ctx, text)
		if err == nil {
			return req, nil
		}
		p.logger.Warn("llm parse failed, falling back to rules", "error", err)
	}
	req := ParseWithRules(text)
	return req, nil
}

func (p *Parser) parseLLM(ctx context.Context, text string) (scoring.RankRequest, error) {
	var req scoring.RankRequest
	out, err := p.llm.Complete(ctx, systemPrompt, text)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal([]byte(out), &req); err != nil {
		return req, err
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$?(\d+)k`),
	regexp.MustCompile(`\$(\d{5,6})`),
	regexp.MustCompile(`make[s]?\s+\$?(\d+)`),
	regexp.MustCompile(`salary[:\s]+\$?(\d+)`),
}

var familyPattern = regexp.MustCompile(`family\s+(?:of\s+)?(\d+)`)

// ParseWithRules is the deterministic fallback parser. It always produces a
// valid request; unrecognized text yields the defaults.
func ParseWithRules(text string) scoring.RankRequest {
	req := scoring.RankRequest{
		Salary:              90000,
		AffordabilityWeight: 10,
	}
	req.ApplyDefaults()

	lower := strings.ToLower(text)

	for _, pat := range salaryPatterns {
		if m := pat.FindStringSubmatch(lower); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				if v < 1000 {
					v *= 1000
				}
				if v >= 10000 && v <= 1000000 {
					req.Salary = v
				}
			}
			break
		}
	}

	switch {
	case containsAny(lower, "single", "just me", "alone"):
		req.FamilySize = 1
	case containsAny(lower, "couple", "partner", "spouse"):
		req.FamilySize = 2
	}
	if m := familyPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 10 {
			req.FamilySize = v
		}
	}

	switch {
	case containsAny(lower, "car", "drive", "driving"):
		req.TransportMode = scoring.ModeCar
	case containsAny(lower, "bike", "walk", "walkable"):
		req.TransportMode = scoring.ModeBikeWalk
	case containsAny(lower, "transit", "bus", "subway", "train"):
		req.TransportMode = scoring.ModePublicTransit
	}

	weight := 0.0
	switch {
	case containsAny(lower, "very important", "critical", "essential", "must have"):
		weight = 9
	case containsAny(lower, "important", "care about", "need"):
		weight = 7
	case strings.Contains(lower, "nice"):
		weight = 5
	}
	if weight > 0 {
		if containsAny(lower, "school", "education") {
			req.SchoolsWeight = weight
		}
		if containsAny(lower, "safety", "safe", "crime") {
			req.SafetyWeight = weight
		}
		if containsAny(lower, "weather", "climate") {
			req.WeatherWeight = weight
		}
		if containsAny(lower, "healthcare", "hospital") {
			req.HealthcareWeight = weight
		}
		if containsAny(lower, "walkability", "walkable") {
			req.WalkabilityWeight = weight
		}
	}

	return req
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
