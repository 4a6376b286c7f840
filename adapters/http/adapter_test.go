package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"award-sync/adapters/upstream"
	"award-sync/core/endpoint"
	"award-sync/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const availabilityBody = `[
	{"ID": "a1", "ParsedDate": "2024-01-05", "YMileageCost": "12500", "Route": {"ID": "r1", "OriginAirport": "JFK"}},
	{"ID": "a2", "ParsedDate": "2024-02-01", "YMileageCost": ""}
]`

type stubFetcher struct {
	status int
	body   string
	err    error
	last   endpoint.FetchRequest
	lastID string
}

func (s *stubFetcher) Fetch(ctx context.Context, req endpoint.FetchRequest) (*endpoint.FetchResponse, error) {
	s.last = req
	s.lastID, _ = endpoint.RequestID(ctx)
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &endpoint.FetchResponse{StatusCode: status, Body: []byte(s.body)}, nil
}

func newTestAdapter(t *testing.T, f endpoint.Fetcher) (*Adapter, http.Handler) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	metrics := upstream.NewMetricsFetcher(f)
	eps, err := endpoint.New("https://seats.aero", metrics, logger)
	require.NoError(t, err)

	a := New(eps, metrics, nil, logger)
	return a, a.Router()
}

func do(t *testing.T, h http.Handler, target string, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func TestHealthAndReady(t *testing.T) {
	_, h := newTestAdapter(t, &stubFetcher{body: `[]`})

	rec, body := do(t, h, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "upstream")

	rec, body = do(t, h, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestRoutesEndpoint(t *testing.T) {
	f := &stubFetcher{body: `[{"ID": "r1", "OriginAirport": "JFK", "DestinationAirport": "LHR", "Distance": 3451}]`}
	_, h := newTestAdapter(t, f)

	rec, body := do(t, h, "/api/v1/routes", http.Header{"X-Request-Id": {"req-7"}})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "https://seats.aero/api/routes", f.last.URL)
	assert.Equal(t, "req-7", f.lastID)
	assert.Equal(t, "req-7", rec.Header().Get(requestIDHeader))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Routes", body["schema"])
	assert.Equal(t, float64(1), body["count"])

	rows := body["rows"].([]any)
	row := rows[0].(map[string]any)
	assert.Equal(t, "r1", row["id"])
	assert.Equal(t, "LHR", row["destinationAirport"])
	assert.Equal(t, float64(3451), row["distance"])
	assert.NotContains(t, row, "autoCreated")
	assert.NotContains(t, row, "numDaysOut")

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "req-7", meta["request_id"])
}

func TestAvailabilityEndpointFiltersDates(t *testing.T) {
	f := &stubFetcher{body: availabilityBody}
	_, h := newTestAdapter(t, f)

	rec, body := do(t, h, "/api/v1/availability?source=united&start=2024-01-01&end=2024-01-31", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "https://seats.aero/api/availability?source=united", f.last.URL)
	assert.Equal(t, "Availability", body["schema"])
	assert.Equal(t, float64(1), body["count"])

	row := body["rows"].([]any)[0].(map[string]any)
	assert.Equal(t, "a1", row["id"])
	assert.Equal(t, float64(12500), row["yMileageCost"])
	assert.Equal(t, "JFK", row["route"].(map[string]any)["originAirport"])
}

func TestAvailabilityEndpointWithoutDates(t *testing.T) {
	_, h := newTestAdapter(t, &stubFetcher{body: availabilityBody})

	rec, body := do(t, h, "/api/v1/availability?source=united", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])

	second := body["rows"].([]any)[1].(map[string]any)
	assert.NotContains(t, second, "yMileageCost")
}

func TestAvailabilityEndpointRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing source", "/api/v1/availability"},
		{"blank source", "/api/v1/availability?source=%20"},
		{"start without end", "/api/v1/availability?source=united&start=2024-01-01"},
		{"end without start", "/api/v1/availability?source=united&end=2024-01-01"},
		{"malformed date", "/api/v1/availability?source=united&start=2024-01-01&end=01/31/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFetcher{body: `[]`}
			_, h := newTestAdapter(t, f)

			rec, body := do(t, h, tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, string(errors.TypeInput), body["type"])
			assert.Empty(t, f.last.URL, "no upstream call expected")
		})
	}
}

func TestUpstreamFailuresMapToStatus(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
		status  int
		errType errors.Type
	}{
		{"upstream status", &stubFetcher{status: http.StatusInternalServerError}, http.StatusBadGateway, errors.TypeUpstream},
		{"network", &stubFetcher{err: fmt.Errorf("dial tcp: refused")}, http.StatusBadGateway, errors.TypeNetwork},
		{"bad payload", &stubFetcher{body: `{`}, http.StatusBadGateway, errors.TypeParsing},
		{"deadline", &stubFetcher{err: context.DeadlineExceeded}, http.StatusGatewayTimeout, errors.TypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestAdapter(t, tt.fetcher)

			rec, body := do(t, h, "/api/v1/routes", nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, string(tt.errType), body["type"])
		})
	}
}

func TestSourcesAndSchemas(t *testing.T) {
	_, h := newTestAdapter(t, &stubFetcher{body: `[]`})

	rec, body := do(t, h, "/api/v1/sources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["sources"], 7)

	rec, body = do(t, h, "/api/v1/schemas/availability", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Availability", body["name"])
	assert.Equal(t, "id", body["id_property"])

	rec, body = do(t, h, "/api/v1/schemas/flights", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errors.TypeNotFound), body["type"])
}

func TestUnknownRoute(t *testing.T) {
	_, h := newTestAdapter(t, &stubFetcher{})

	rec, _ := do(t, h, "/api/v2/anything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeneratedRequestID(t *testing.T) {
	f := &stubFetcher{body: `[]`}
	_, h := newTestAdapter(t, f)

	rec, _ := do(t, h, "/api/v1/routes", nil)
	id := rec.Header().Get(requestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, f.lastID)
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestAdapter(t, &stubFetcher{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/routes", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(fmt.Errorf("plain")))
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.Input("bad")))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(errors.Network("slow", context.DeadlineExceeded)))
}
