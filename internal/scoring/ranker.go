package scoring

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/errs"
	"github.com/livebetter-hq/livebetter/internal/events"
	"github.com/livebetter-hq/livebetter/internal/metrics"
	"github.com/livebetter-hq/livebetter/internal/store"
)

// RankCachePrefix namespaces ranking responses in the cache.
const RankCachePrefix = "rank"

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ScoredMetro is one fully scored metro in a ranking response.
type ScoredMetro struct {
	MetroID int64  `json:"metro_id"`
	Name    string `json:"name"`
	State   string `json:"state"`

	Score               float64    `json:"score"`
	AffordabilityScore  float64    `json:"affordability_score"`
	DiscretionaryIncome float64    `json:"discretionary_income"`
	Essentials          Essentials `json:"essentials"`
	NetMonthlyAdjusted  float64    `json:"net_monthly_adjusted"`

	RPPIndex   float64 `json:"rpp_index"`
	Population *int64  `json:"population,omitempty"`
	Coords     Coords  `json:"coords"`

	QualityOfLife *NormalizedQOL `json:"quality_of_life,omitempty"`

	// raw walkability, kept for the bike/walk filter and boost
	walkability *float64
}

type RankResponse struct {
	Input   RankRequest    `json:"input"`
	Results []*ScoredMetro `json:"results"`
}

// Ranker runs the per-request ranking pipeline: cache check, metro fetch,
// per-metro scoring, mode policy, sort, truncate, cache store. All
// dependencies are injected; the pipeline itself holds no mutable state.
type Ranker struct {
	store  store.Store
	cache  cache.Cache
	events events.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRanker(s store.Store, c cache.Cache, ev events.Client, ttl time.Duration, logger *slog.Logger) *Ranker {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Ranker{store: s, cache: c, events: ev, ttl: ttl, logger: logger}
}

// Rank computes the affordability ranking for one request. The request must
// already have defaults applied and be validated.
func (r *Ranker) Rank(ctx context.Context, req RankRequest) (*RankResponse, error) {
	metrics.RankRequests.Inc()

	key := cache.Key(RankCachePrefix, req.CacheFields())
	if resp := r.cachedResponse(ctx, key); resp != nil {
		metrics.CacheHits.WithLabelValues(RankCachePrefix).Inc()
		return resp, nil
	}
	metrics.CacheMisses.WithLabelValues(RankCachePrefix).Inc()

	start := time.Now()

	metros, err := r.store.FetchMetros(ctx, store.MetroFilter{
		PopulationMin: req.PopulationMin,
		State:         req.State,
	})
	if err != nil {
		return nil, errs.Unavailable("fetch metros", err)
	}
	if len(metros) == 0 {
		return nil, errs.NotFound("no metros found matching the criteria")
	}

	results := make([]*ScoredMetro, 0, len(metros))
	for _, m := range metros {
		sm, err := r.scoreMetro(req, m)
		if err != nil {
			// Partial failure: drop the metro, keep the request alive.
			metrics.ScoreFailures.Inc()
			r.logger.Warn("skipping metro", "metro", m.Name, "error", err)
			continue
		}
		metrics.MetrosScored.Inc()
		results = append(results, sm)
	}

	results = ApplyModePolicy(results, req.TransportMode)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	resp := &RankResponse{Input: req, Results: results}

	if data, err := json.Marshal(resp); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}

	metrics.RankDuration.Observe(time.Since(start).Seconds())
	r.publishComputed(req, len(results), time.Since(start))

	return resp, nil
}

// scoreMetro runs one metro through the calculator, normalizer and composite
// scorer. Pure apart from the injected record.
func (r *Ranker) scoreMetro(req RankRequest, m *store.Metro) (*ScoredMetro, error) {
	var walkability *float64
	if m.QualityOfLife != nil {
		walkability = m.QualityOfLife.WalkabilityScore
	}

	afford, err := CalculateAffordability(AffordabilityInput{
		Salary:      float64(req.Salary),
		FamilySize:  req.FamilySize,
		RentCapPct:  req.RentCapPct,
		EffTaxRate:  m.EffTaxRate,
		MedianRent:  m.MedianRent,
		Utilities:   m.UtilitiesMonthly,
		RPPIndex:    m.RPPIndex,
		Mode:        req.TransportMode,
		Walkability: walkability,
	})
	if err != nil {
		return nil, err
	}

	qol := NormalizeQOL(m.QualityOfLife)
	composite := CompositeScore(afford.Score, qol, req.Weights())

	return &ScoredMetro{
		MetroID:             m.ID,
		Name:                m.Name,
		State:               m.State,
		Score:               round4(composite),
		AffordabilityScore:  afford.Score,
		DiscretionaryIncome: afford.DiscretionaryIncome,
		Essentials:          afford.Essentials,
		NetMonthlyAdjusted:  afford.NetMonthlyAdjusted,
		RPPIndex:            m.RPPIndex,
		Population:          m.Population,
		Coords:              Coords{Lat: m.Lat, Lon: m.Lon},
		QualityOfLife:       qol,
		walkability:         walkability,
	}, nil
}

func (r *Ranker) cachedResponse(ctx context.Context, key string) *RankResponse {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache get failed, treating as miss", "key", key, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var resp RankResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		r.logger.Warn("discarding malformed cache entry", "key", key, "error", err)
		return nil
	}
	return &resp
}

func (r *Ranker) publishComputed(req RankRequest, count int, elapsed time.Duration) {
	if r.events == nil {
		return
	}
	_ = r.events.Publish(events.SubjectRankComputed, events.RankComputedEvent{
		EventID:       uuid.New(),
		Salary:        req.Salary,
		FamilySize:    req.FamilySize,
		TransportMode: string(req.TransportMode),
		ResultCount:   count,
		DurationMs:    elapsed.Milliseconds(),
		Timestamp:     time.Now().UTC(),
	})
}
