package casesearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/config"
	"go-crossroads/internal/connectors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBackend struct {
	mu      sync.Mutex
	queries []string
	// hold blocks the named query until the channel is closed
	hold    map[string]chan struct{}
	started chan string
	err     error
}

func (m *mockBackend) ListReference(ctx context.Context, session models.Session, kind models.ReferenceKind) ([]models.ReferenceItem, error) {
	return nil, errors.New("not implemented")
}

func (m *mockBackend) FetchReport(ctx context.Context, session models.Session, path string, req connectors.ReportRequest) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func (m *mockBackend) SearchCases(ctx context.Context, session models.Session, query string) ([]connectors.CaseSummary, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	hold := m.hold[query]
	m.mu.Unlock()

	if m.started != nil {
		m.started <- query
	}
	if hold != nil {
		<-hold
	}
	if m.err != nil {
		return nil, m.err
	}
	return []connectors.CaseSummary{{ID: "c-" + query, FullName: query}}, nil
}

func (m *mockBackend) CreateAssistanceRequest(ctx context.Context, session models.Session, body any) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func (m *mockBackend) Ping(ctx context.Context) error { return nil }

func (m *mockBackend) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

type collector struct {
	mu      sync.Mutex
	results []Result
}

func (c *collector) deliver(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func newService(backend connectors.Backend, wait time.Duration) CaseSearchService {
	return NewCaseSearchService(backend, &config.Config{CaseSearchDebounce: wait}, zap.NewNop())
}

func TestSearchBlankQuerySkipsUpstream(t *testing.T) {
	backend := &mockBackend{}
	cases, err := newService(backend, 0).Search(context.Background(), models.Session{}, "   ")
	require.NoError(t, err)
	assert.Empty(t, cases)
	assert.NotNil(t, cases)
	assert.Empty(t, backend.Queries())
}

func TestSearcherDebouncesTyping(t *testing.T) {
	backend := &mockBackend{}
	out := &collector{}
	searcher := newService(backend, 30*time.Millisecond).NewSearcher(models.Session{UserID: "u1"}, out.deliver)
	defer searcher.Close()

	var last uint64
	for _, q := range []string{"a", "an", "ann"} {
		last = searcher.Submit(context.Background(), q)
	}

	require.Eventually(t, func() bool { return len(out.Results()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ann"}, backend.Queries())

	got := out.Results()[0]
	assert.Equal(t, last, got.Seq)
	assert.Equal(t, "ann", got.Query)
	assert.Equal(t, []connectors.CaseSummary{{ID: "c-ann", FullName: "ann"}}, got.Results)
}

func TestSearcherDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	backend := &mockBackend{
		hold:    map[string]chan struct{}{"ann": release},
		started: make(chan string, 2),
	}
	out := &collector{}
	searcher := newService(backend, 5*time.Millisecond).NewSearcher(models.Session{UserID: "u1"}, out.deliver)
	defer searcher.Close()

	searcher.Submit(context.Background(), "ann")
	assert.Equal(t, "ann", <-backend.started)

	latest := searcher.Submit(context.Background(), "anna")
	assert.Equal(t, "anna", <-backend.started)
	require.Eventually(t, func() bool { return len(out.Results()) == 1 }, time.Second, 5*time.Millisecond)

	close(release)
	time.Sleep(30 * time.Millisecond)

	results := out.Results()
	require.Len(t, results, 1)
	assert.Equal(t, latest, results[0].Seq)
	assert.Equal(t, "anna", results[0].Query)
}

func TestSearcherReportsFailure(t *testing.T) {
	backend := &mockBackend{err: connectors.ErrUpstreamUnavailable}
	out := &collector{}
	searcher := newService(backend, time.Millisecond).NewSearcher(models.Session{}, out.deliver)
	defer searcher.Close()

	searcher.Submit(context.Background(), "bob")
	require.Eventually(t, func() bool { return len(out.Results()) == 1 }, time.Second, 5*time.Millisecond)

	got := out.Results()[0]
	assert.Equal(t, "Failed to search cases", got.Error)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
}

func TestSearchRoute(t *testing.T) {
	tests := []struct {
		name       string
		backend    *mockBackend
		wantStatus int
	}{
		{name: "ok", backend: &mockBackend{}, wantStatus: fiber.StatusOK},
		{name: "upstream down", backend: &mockBackend{err: connectors.ErrUpstreamUnavailable}, wantStatus: fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			controller := NewCaseSearchController(newService(tt.backend, time.Millisecond), zap.NewNop())
			NewCaseSearchApi(controller, &config.Config{SkipAuth: true}).Setup(app)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/case-search?q=smith", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, []any{map[string]any{"_id": "c-smith", "fullName": "smith"}}, body["data"])
			} else {
				assert.Equal(t, true, body["retryable"])
			}
		})
	}
}

func TestWebsocketRouteRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	controller := NewCaseSearchController(newService(&mockBackend{}, time.Millisecond), zap.NewNop())
	NewCaseSearchApi(controller, &config.Config{SkipAuth: true}).Setup(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ws/case-search", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
