package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	bookingports "github.com/Apurer/shareit/internal/domains/bookings/ports"
)

const tracerName = "github.com/Apurer/shareit/internal/domains/bookings/adapters/observability/service"

// Service decorates the booking service with tracing, logging, and metrics.
type Service struct {
	inner   bookingports.Service
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

// New wraps the core booking service.
func New(inner bookingports.Service, opts ...Option) bookingports.Service {
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

func (s *Service) Create(ctx context.Context, bookerID int64, req bookingports.NewBooking) (*bookingports.View, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.Create", trace.WithAttributes(
		attribute.Int64("booking.booker_id", bookerID),
		attribute.Int64("booking.item_id", req.ItemID),
	))
	defer span.End()

	view, err := s.inner.Create(ctx, bookerID, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create booking",
			slog.Int64("booking.booker_id", bookerID), slog.Int64("booking.item_id", req.ItemID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "booking created", slog.Int64("booking.id", view.Booking.ID))
	return view, nil
}

func (s *Service) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*bookingports.View, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.Approve", trace.WithAttributes(
		attribute.Int64("booking.id", bookingID),
		attribute.Bool("booking.approved", approved),
	))
	defer span.End()

	view, err := s.inner.Approve(ctx, userID, bookingID, approved)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to decide booking", slog.Int64("booking.id", bookingID))
	}
	s.metrics.recordDecided(ctx, view.Booking.Status)
	s.logInfo(ctx, "booking decided",
		slog.Int64("booking.id", view.Booking.ID),
		slog.String("booking.status", string(view.Booking.Status)))
	return view, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID, requesterID int64) (*bookingports.View, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.GetByID", trace.WithAttributes(attribute.Int64("booking.id", bookingID)))
	defer span.End()

	view, err := s.inner.GetByID(ctx, bookingID, requesterID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load booking", slog.Int64("booking.id", bookingID))
	}
	return view, nil
}

func (s *Service) ListByBooker(ctx context.Context, bookerID int64, state domain.State, page bookingports.Page) ([]*bookingports.View, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.ListByBooker", trace.WithAttributes(
		attribute.Int64("booking.booker_id", bookerID),
		attribute.String("booking.state", string(state)),
	))
	defer span.End()

	views, err := s.inner.ListByBooker(ctx, bookerID, state, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list bookings", slog.Int64("booking.booker_id", bookerID))
	}
	span.SetAttributes(attribute.Int("booking.count", len(views)))
	return views, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, state domain.State, page bookingports.Page) ([]*bookingports.View, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.ListByOwner", trace.WithAttributes(
		attribute.Int64("booking.owner_id", ownerID),
		attribute.String("booking.state", string(state)),
	))
	defer span.End()

	views, err := s.inner.ListByOwner(ctx, ownerID, state, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list owner bookings", slog.Int64("booking.owner_id", ownerID))
	}
	span.SetAttributes(attribute.Int("booking.count", len(views)))
	return views, nil
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
	bookingsCreated metric.Int64Counter
	bookingsDecided metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	bookingsCreated, _ := m.Int64Counter("bookings.service.created", metric.WithDescription("Number of bookings created"))
	bookingsDecided, _ := m.Int64Counter("bookings.service.decided", metric.WithDescription("Number of bookings approved or rejected"))
	return serviceMetrics{bookingsCreated: bookingsCreated, bookingsDecided: bookingsDecided}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.bookingsCreated != nil {
		m.bookingsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDecided(ctx context.Context, status domain.Status) {
	if m.bookingsDecided != nil {
		m.bookingsDecided.Add(ctx, 1, metric.WithAttributes(attribute.String("booking.status", string(status))))
	}
}

var _ bookingports.Service = (*Service)(nil)
