// Package pipeline sequences the ingestion stages: query validation,
// upstream fetch, normalization, filtering, and the fallback policy that
// guarantees a caller always receives a usable dataset once past parameter
// validation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/fallback"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

// CatalogSource fetches raw records from the satellite catalog feed.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, q domain.CatalogQuery) ([]domain.RawCatalogRecord, error)
}

// ApproachSource fetches a raw batch from the close-approach feed.
type ApproachSource interface {
	FetchFeed(ctx context.Context, r domain.DateRange) (domain.RawNEOFeed, error)
}

// ObjectsEnvelope is the response shape for catalog queries.
type ObjectsEnvelope struct {
	Objects       []domain.SpaceObject `json:"objects"`
	Total         int                  `json:"total"`
	CountsByType  domain.TypeCounts    `json:"counts_by_type"`
	CountsByOrbit domain.OrbitCounts   `json:"counts_by_orbit"`
	FetchedAt     int64                `json:"fetched_at"`
	IsMock        bool                 `json:"is_mock"`
	Warning       string               `json:"warning,omitempty"`
	ErrorCode     string               `json:"error_code,omitempty"`
}

// ApproachesEnvelope is the response shape for close-approach queries.
type ApproachesEnvelope struct {
	Approaches []domain.ApproachView `json:"approaches"`
	Total      int                   `json:"total"`
	FetchedAt  int64                 `json:"fetched_at"`
	IsMock     bool                  `json:"is_mock"`
	Warning    string                `json:"warning,omitempty"`
	ErrorCode  string                `json:"error_code,omitempty"`
}

// ObjectsQuery is the caller-facing catalog query before validation. Enum
// fields arrive as strings and are checked against the closed enum domains.
type ObjectsQuery struct {
	Type       string
	OrbitClass string
	Country    string
	ActiveOnly bool
	Limit      int
}

// Service is the pipeline façade: the single entry point callers invoke.
// Stateless per request; safe for unbounded concurrent use.
type Service struct {
	catalog      CatalogSource
	approaches   ApproachSource
	catalogName  string
	defaultLimit int
	maxLimit     int
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewService creates the façade. catalogName is the provenance tag stamped
// on live catalog entities.
func NewService(catalog CatalogSource, approaches ApproachSource, catalogName string, defaultLimit, maxLimit int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		catalog:      catalog,
		approaches:   approaches,
		catalogName:  catalogName,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
		metrics:      metrics,
	}
}

// CheckReadiness reports whether the service can produce envelopes. The
// fallback datasets are the floor of every degraded path, so readiness is
// their parseability.
func (s *Service) CheckReadiness(_ context.Context) error {
	return fallback.Verify()
}

// Objects validates the query, fetches and normalizes the catalog, applies
// the requested filters (recomputing aggregates after each), and shapes the
// envelope. Any post-validation failure yields the fallback dataset instead
// of an error: the only error this method returns is domain.ErrInvalidQuery.
func (s *Service) Objects(ctx context.Context, q ObjectsQuery) (*ObjectsEnvelope, error) {
	cq, err := s.validate(q)
	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues("objects", "invalid").Inc()
		return nil, err
	}

	records, err := s.catalog.FetchCatalog(ctx, cq)
	if err != nil {
		return s.fallbackObjects(err), nil
	}

	set := domain.NormalizeCatalog(records, s.catalogName)
	objects := set.Objects
	byType, byOrbit := set.CountsByType, set.CountsByOrbit

	// The upstream query already narrows by type/country/decay where the
	// feed supports it, but the feed is untrusted: re-apply every filter
	// locally and re-aggregate over what actually survived.
	if q.Type != "" {
		objects = domain.FilterByType(objects, domain.ObjectType(q.Type))
		byType, byOrbit = domain.CountObjects(objects)
	}
	if q.OrbitClass != "" {
		objects = domain.FilterByOrbit(objects, domain.OrbitClass(q.OrbitClass))
		byType, byOrbit = domain.CountObjects(objects)
	}
	if q.Country != "" {
		objects = domain.FilterByCountry(objects, q.Country)
		byType, byOrbit = domain.CountObjects(objects)
	}
	if q.ActiveOnly {
		objects = domain.FilterActive(objects)
		byType, byOrbit = domain.CountObjects(objects)
	}
	if len(objects) > cq.Limit {
		objects = objects[:cq.Limit]
		byType, byOrbit = domain.CountObjects(objects)
	}

	s.metrics.RequestsTotal.WithLabelValues("objects", "live").Inc()
	s.metrics.ObjectsReturned.Observe(float64(len(objects)))

	return &ObjectsEnvelope{
		Objects:       objects,
		Total:         len(objects),
		CountsByType:  byType,
		CountsByOrbit: byOrbit,
		FetchedAt:     domain.Clock().Now().UnixMilli(),
		IsMock:        false,
	}, nil
}

// Approaches fetches and normalizes a close-approach window. Date ranges
// are clamped, never rejected, so there is no validation failure mode; any
// fetch failure yields the fallback dataset.
func (s *Service) Approaches(ctx context.Context, r domain.DateRange) (*ApproachesEnvelope, error) {
	feed, err := s.approaches.FetchFeed(ctx, r)
	if err != nil {
		return s.fallbackApproaches(err), nil
	}

	set := domain.NormalizeNEOFeed(feed, s.logger)

	s.metrics.RequestsTotal.WithLabelValues("approaches", "live").Inc()
	s.metrics.ObjectsReturned.Observe(float64(len(set.Views)))

	return &ApproachesEnvelope{
		Approaches: set.Views,
		Total:      len(set.Views),
		FetchedAt:  domain.Clock().Now().UnixMilli(),
		IsMock:     false,
	}, nil
}

// validate checks enum fields against their closed domains and resolves the
// limit. Violations are wrapped domain.ErrInvalidQuery with a message
// enumerating the valid values; nothing reaches the network on that path.
func (s *Service) validate(q ObjectsQuery) (domain.CatalogQuery, error) {
	if q.Type != "" && !domain.ValidObjectType(q.Type) {
		return domain.CatalogQuery{}, fmt.Errorf("%w: unknown type %q, valid values: %s",
			domain.ErrInvalidQuery, q.Type, joinTypes())
	}
	if q.OrbitClass != "" && !domain.ValidOrbitClass(q.OrbitClass) {
		return domain.CatalogQuery{}, fmt.Errorf("%w: unknown orbit class %q, valid values: %s",
			domain.ErrInvalidQuery, q.OrbitClass, joinOrbits())
	}

	limit := q.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}

	return domain.CatalogQuery{
		ObjectType: domain.ObjectType(q.Type),
		Country:    q.Country,
		ActiveOnly: q.ActiveOnly,
		Limit:      domain.ClampLimit(limit, s.maxLimit),
	}, nil
}

// fallbackObjects builds the degraded catalog envelope: the whole offline
// dataset, unfiltered so a degraded response is byte-stable, flagged and
// annotated with the failure kind.
func (s *Service) fallbackObjects(cause error) *ObjectsEnvelope {
	code := domain.FailureCode(cause)
	s.logger.Warn("serving fallback catalog dataset", "reason", code, "error", cause)
	s.metrics.RequestsTotal.WithLabelValues("objects", "mock").Inc()
	s.metrics.FallbackServed.WithLabelValues("catalog", code).Inc()

	objects, err := fallback.Catalog()
	if err != nil {
		// Verified at startup; an envelope with no objects is still the
		// contract-shaped answer if the fixture somehow regressed.
		s.logger.Error("fallback catalog unavailable", "error", err)
		objects = nil
	}
	byType, byOrbit := domain.CountObjects(objects)

	return &ObjectsEnvelope{
		Objects:       objects,
		Total:         len(objects),
		CountsByType:  byType,
		CountsByOrbit: byOrbit,
		FetchedAt:     domain.Clock().Now().UnixMilli(),
		IsMock:        true,
		Warning:       warningFor(code),
		ErrorCode:     code,
	}
}

func (s *Service) fallbackApproaches(cause error) *ApproachesEnvelope {
	code := domain.FailureCode(cause)
	s.logger.Warn("serving fallback approach dataset", "reason", code, "error", cause)
	s.metrics.RequestsTotal.WithLabelValues("approaches", "mock").Inc()
	s.metrics.FallbackServed.WithLabelValues("neo", code).Inc()

	views, err := fallback.Approaches()
	if err != nil {
		s.logger.Error("fallback approaches unavailable", "error", err)
		views = nil
	}

	return &ApproachesEnvelope{
		Approaches: views,
		Total:      len(views),
		FetchedAt:  domain.Clock().Now().UnixMilli(),
		IsMock:     true,
		Warning:    warningFor(code),
		ErrorCode:  code,
	}
}

func warningFor(code string) string {
	switch code {
	case "unauthenticated":
		return "Upstream credentials are missing or invalid; serving mock data (fixture " + fallback.Version + ")."
	case "malformed_response":
		return "Upstream returned a malformed response; serving mock data (fixture " + fallback.Version + ")."
	default:
		return "Upstream feed is unavailable; serving mock data (fixture " + fallback.Version + ")."
	}
}

func joinTypes() string {
	vals := make([]string, len(domain.ObjectTypes))
	for i, t := range domain.ObjectTypes {
		vals[i] = string(t)
	}
	return strings.Join(vals, ", ")
}

func joinOrbits() string {
	vals := make([]string, len(domain.OrbitClasses))
	for i, c := range domain.OrbitClasses {
		vals[i] = string(c)
	}
	return strings.Join(vals, ", ")
}
