package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/parser"
	"github.com/livebetter-hq/livebetter/internal/scoring"
	"github.com/livebetter-hq/livebetter/internal/store"
)

type mockStore struct {
	metros  []*store.Metro
	healthy bool
}

func (m *mockStore) FetchMetros(_ context.Context, filter store.MetroFilter) ([]*store.Metro, error) {
	var out []*store.Metro
	for _, metro := range m.metros {
		if metro.Population != nil && *metro.Population < filter.PopulationMin {
			continue
		}
		out = append(out, metro)
	}
	return out, nil
}

func (m *mockStore) GetMetrosByIDs(_ context.Context, ids []int64) ([]*store.Metro, error) {
	var out []*store.Metro
	for _, metro := range m.metros {
		for _, id := range ids {
			if metro.ID == id {
				out = append(out, metro)
			}
		}
	}
	return out, nil
}

func (m *mockStore) MetroCount(_ context.Context) (int, error) { return len(m.metros), nil }

func (m *mockStore) HealthCheck(_ context.Context) store.Health {
	if !m.healthy {
		return store.Health{Status: "unhealthy", Error: "connection refused"}
	}
	return store.Health{Status: "healthy", Metros: len(m.metros), MetrosWithCosts: len(m.metros)}
}

func (m *mockStore) Close() error { return nil }

func int64Ptr(v int64) *int64 { return &v }

func seedMetros() []*store.Metro {
	return []*store.Metro{
		{
			ID: 1, Name: "Raleigh", State: "NC", CBSACode: "39580",
			Population: int64Ptr(1_400_000), MedianRent: 1450, RPPIndex: 0.95,
			EffTaxRate: 0.27, UtilitiesMonthly: 170,
		},
		{
			ID: 2, Name: "San Francisco", State: "CA", CBSACode: "41860",
			Population: int64Ptr(4_700_000), MedianRent: 3200, RPPIndex: 1.28,
			EffTaxRate: 0.3, UtilitiesMonthly: 210,
		},
	}
}

func newTestServer(t *testing.T, s *mockStore, adminToken string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.NewMemoryCache()
	ranker := scoring.NewRanker(s, c, nil, time.Hour, logger)
	p := parser.New(nil, logger)

	srv := httptest.NewServer(NewRouter(s, c, ranker, p, time.Hour, adminToken, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestRankEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "")

	resp := postJSON(t, srv.URL+"/api/v1/rank", `{"salary": 90000}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out scoring.RankResponse
	decodeBody(t, resp, &out)
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	if out.Results[0].Name != "Raleigh" {
		t.Errorf("top result = %s, want Raleigh", out.Results[0].Name)
	}
	if out.Results[0].Score < out.Results[1].Score {
		t.Error("results not sorted by score")
	}
}

func TestRankEndpointValidation(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "")

	tests := []struct {
		name string
		body string
	}{
		{"salary too low", `{"salary": 500}`},
		{"family too large", `{"salary": 90000, "family_size": 50}`},
		{"bad transport mode", `{"salary": 90000, "transport_mode": "teleport"}`},
		{"malformed json", `{"salary": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/v1/rank", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRankEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, &mockStore{healthy: true}, "")

	resp := postJSON(t, srv.URL+"/api/v1/rank", `{"salary": 90000}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMetroBatchEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "")

	resp := postJSON(t, srv.URL+"/api/v1/metros/batch", `{"metro_ids": [1, 2]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var metros []*store.Metro
	decodeBody(t, resp, &metros)
	if len(metros) != 2 {
		t.Errorf("got %d metros, want 2", len(metros))
	}
}

func TestMetroBatchEndpointValidation(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "")

	resp := postJSON(t, srv.URL+"/api/v1/metros/batch", `{"metro_ids": []}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty ids: status = %d, want 400", resp.StatusCode)
	}

	ids := make([]string, 11)
	for i := range ids {
		ids[i] = "1"
	}
	resp = postJSON(t, srv.URL+"/api/v1/metros/batch", `{"metro_ids": [`+strings.Join(ids, ",")+`]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("too many ids: status = %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/v1/metros/batch", `{"metro_ids": [999]}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown ids: status = %d, want 404", resp.StatusCode)
	}
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockStore{healthy: true}, "")

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["version"] != Version {
		t.Errorf("version = %q, want %q", body["version"], Version)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "")

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body HealthResponse
	decodeBody(t, resp, &body)
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.MetrosCount != 2 {
		t.Errorf("metros_count = %d, want 2", body.MetrosCount)
	}
	if body.Cache.Backend != "memory" {
		t.Errorf("cache backend = %q, want memory", body.Cache.Backend)
	}
}

func TestHealthEndpointDatabaseDown(t *testing.T) {
	srv := newTestServer(t, &mockStore{healthy: false}, "")

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestParsePreferencesEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockStore{healthy: true}, "")

	resp := postJSON(t, srv.URL+"/api/v1/parse-preferences", `{"text": "family of 3 on $120k, good schools are very important"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var req scoring.RankRequest
	decodeBody(t, resp, &req)
	if req.Salary != 120000 {
		t.Errorf("salary = %d, want 120000", req.Salary)
	}
	if req.FamilySize != 3 {
		t.Errorf("family_size = %d, want 3", req.FamilySize)
	}
	if req.SchoolsWeight != 9 {
		t.Errorf("schools weight = %f, want 9", req.SchoolsWeight)
	}

	resp = postJSON(t, srv.URL+"/api/v1/parse-preferences", `{"text": "   "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank text: status = %d, want 400", resp.StatusCode)
	}
}

func TestAdminCacheInvalidate(t *testing.T) {
	srv := newTestServer(t, &mockStore{metros: seedMetros(), healthy: true}, "admin-token")

	// warm the cache
	postJSON(t, srv.URL+"/api/v1/rank", `{"salary": 90000}`)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/admin/cache/invalidate", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/v1/admin/cache/invalidate", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/v1/admin/cache/invalidate", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]int
	decodeBody(t, resp, &body)
	if body["deleted"] < 1 {
		t.Errorf("deleted = %d, want at least 1", body["deleted"])
	}
}
