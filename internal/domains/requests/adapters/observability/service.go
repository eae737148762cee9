package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	requestdomain "github.com/Apurer/shareit/internal/domains/requests/domain"
	requestports "github.com/Apurer/shareit/internal/domains/requests/ports"
)

const tracerName = "github.com/Apurer/shareit/internal/domains/requests/adapters/observability/service"

// Service decorates the item-request service with tracing, logging, and metrics.
type Service struct {
	inner   requestports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core item-request service.
func New(inner requestports.Service, opts ...Option) requestports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Create(ctx context.Context, authorID int64, description string) (*requestdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "RequestService.Create", trace.WithAttributes(attribute.Int64("request.author_id", authorID)))
	defer span.End()

	details, err := s.inner.Create(ctx, authorID, description)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create item request", slog.Int64("request.author_id", authorID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "item request created", slog.Int64("request.id", details.ID))
	return details, nil
}

func (s *Service) GetByID(ctx context.Context, requestID int64) (*requestdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "RequestService.GetByID", trace.WithAttributes(attribute.Int64("request.id", requestID)))
	defer span.End()

	details, err := s.inner.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item request", slog.Int64("request.id", requestID))
	}
	return details, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID int64) ([]*requestdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "RequestService.ListByAuthor", trace.WithAttributes(attribute.Int64("request.author_id", authorID)))
	defer span.End()

	details, err := s.inner.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list item requests", slog.Int64("request.author_id", authorID))
	}
	span.SetAttributes(attribute.Int("request.count", len(details)))
	return details, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*requestdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "RequestService.ListAll")
	defer span.End()

	details, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list item requests")
	}
	span.SetAttributes(attribute.Int("request.count", len(details)))
	return details, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	requestsCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	requestsCreated, _ := m.Int64Counter("requests.service.created", metric.WithDescription("Number of item requests created"))
	return serviceMetrics{requestsCreated: requestsCreated}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.requestsCreated != nil {
		m.requestsCreated.Add(ctx, 1)
	}
}

var _ requestports.Service = (*Service)(nil)
