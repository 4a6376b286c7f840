// Package endpoint implements the seats.aero Routes and Availability fetch
// endpoints on top of a Fetcher.
package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"award-sync/core/award"
	"award-sync/core/schema"
	"award-sync/internal/errors"
	"award-sync/internal/logging"
)

const (
	routesPath       = "/api/routes"
	availabilityPath = "/api/availability"
)

// Result is a schema-annotated list of rows.
type Result[T any] struct {
	Schema *schema.ObjectSchema
	Rows   []T
}

// AvailabilityParams are the inputs of the availability endpoint.
type AvailabilityParams struct {
	Source award.Source

	// Dates restricts entries to an inclusive window; nil keeps every entry.
	Dates *award.DateRange
}

// Endpoints fetches routes and availability from one upstream base URL.
type Endpoints struct {
	baseURL *url.URL
	fetcher Fetcher
	logger  *zap.Logger
}

// New creates the endpoints. baseURL must be absolute.
func New(baseURL string, fetcher Fetcher, logger *zap.Logger) (*Endpoints, error) {
	if fetcher == nil {
		return nil, errors.New(errors.TypeConfig, "fetcher is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || !u.IsAbs() {
		return nil, errors.Newf(errors.TypeConfig, "base URL must be absolute: %q", baseURL)
	}
	for _, s := range []*schema.ObjectSchema{schema.Route, schema.Availability} {
		if err := s.Validate(); err != nil {
			return nil, errors.Internal("invalid row schema", err)
		}
	}

	return &Endpoints{
		baseURL: u,
		fetcher: fetcher,
		logger:  logging.Or(logger).Named("endpoint"),
	}, nil
}

// Routes returns every route known upstream, unfiltered.
func (e *Endpoints) Routes(ctx context.Context) (*Result[award.Route], error) {
	target := e.urlFor(routesPath, nil)
	body, err := e.get(ctx, target)
	if err != nil {
		return nil, err
	}
	routes, err := decodeRows[award.Route](e.logger, target, body)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("fetched routes", zap.Int("count", len(routes)))
	return &Result[award.Route]{Schema: schema.Route, Rows: routes}, nil
}

// Availability returns availability for one mileage program, passed through
// the date filter and cost normalization.
func (e *Endpoints) Availability(ctx context.Context, params AvailabilityParams) (*Result[award.Availability], error) {
	source := award.Source(strings.TrimSpace(params.Source.String()))
	if source == "" {
		return nil, errors.Input("source is required")
	}
	if !source.IsKnown() {
		e.logger.Debug("requesting availability for unlisted source", zap.String("source", source.String()))
	}

	query := url.Values{}
	query.Set("source", source.String())

	target := e.urlFor(availabilityPath, query)
	body, err := e.get(ctx, target)
	if err != nil {
		return nil, err
	}
	entries, err := decodeRows[award.Availability](e.logger, target, body)
	if err != nil {
		return nil, err
	}

	rows := award.Transform(entries, params.Dates)

	fields := []zap.Field{
		zap.String("source", source.String()),
		zap.Int("received", len(entries)),
		zap.Int("kept", len(rows)),
		zap.Int("absent_costs", award.CountAbsentCosts(rows)),
	}
	if params.Dates != nil {
		fields = append(fields, zap.Stringer("dates", params.Dates))
	}
	e.logger.Debug("fetched availability", fields...)

	return &Result[award.Availability]{Schema: schema.Availability, Rows: rows}, nil
}

func (e *Endpoints) urlFor(path string, query url.Values) string {
	u := *e.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (e *Endpoints) get(ctx context.Context, target string) ([]byte, error) {
	start := time.Now()
	resp, err := e.fetcher.Fetch(ctx, FetchRequest{URL: target, Method: http.MethodGet})
	if err != nil {
		if _, typed := errors.As(err); typed {
			return nil, err
		}
		return nil, errors.Network("fetch "+target, err)
	}
	if resp == nil {
		return nil, errors.New(errors.TypeNetwork, "fetch "+target+": empty response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Upstream(resp.StatusCode, target)
	}

	e.logger.Debug("upstream call",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp.Body, nil
}

// decodeRows decodes a JSON array one element at a time. A body that is not
// an array is a parsing error; an element that is not an object is skipped.
func decodeRows[T any](logger *zap.Logger, target string, body []byte) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, errors.Parsing("decode response from "+target, err)
	}

	rows := make([]T, 0, len(items))
	for i, item := range items {
		var row T
		if err := json.Unmarshal(item, &row); err != nil {
			logger.Warn("skipping malformed row",
				zap.String("url", target),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
