package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	itemports "github.com/Apurer/shareit/internal/domains/items/ports"
)

const tracerName = "github.com/Apurer/shareit/internal/domains/items/adapters/observability/service"

// Service decorates the item service with tracing, logging, and metrics.
type Service struct {
	inner   itemports.Service
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

// New wraps the core item service.
func New(inner itemports.Service, opts ...Option) itemports.Service {
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

func (s *Service) Create(ctx context.Context, ownerID int64, req itemports.NewItem) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.Create", trace.WithAttributes(attribute.Int64("item.owner_id", ownerID)))
	defer span.End()

	item, err := s.inner.Create(ctx, ownerID, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create item", slog.Int64("item.owner_id", ownerID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "item created", slog.Int64("item.id", item.ID), slog.Int64("item.owner_id", ownerID))
	return item, nil
}

func (s *Service) Update(ctx context.Context, userID, itemID int64, patch itemports.UpdateItem) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.Update", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	item, err := s.inner.Update(ctx, userID, itemID, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.Int64("item.id", itemID))
	}
	s.logInfo(ctx, "item updated", slog.Int64("item.id", item.ID))
	return item, nil
}

func (s *Service) Remove(ctx context.Context, userID, itemID int64) error {
	ctx, span := s.tracer.Start(ctx, "ItemService.Remove", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	if err := s.inner.Remove(ctx, userID, itemID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove item", slog.Int64("item.id", itemID))
	}
	s.logInfo(ctx, "item removed", slog.Int64("item.id", itemID))
	return nil
}

func (s *Service) GetByID(ctx context.Context, itemID int64) (*itemdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.GetByID", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	details, err := s.inner.GetByID(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.Int64("item.id", itemID))
	}
	return details, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*itemdomain.Details, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.ListByOwner", trace.WithAttributes(attribute.Int64("item.owner_id", ownerID)))
	defer span.End()

	details, err := s.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items", slog.Int64("item.owner_id", ownerID))
	}
	span.SetAttributes(attribute.Int("item.count", len(details)))
	return details, nil
}

func (s *Service) Search(ctx context.Context, text string) ([]*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.Search")
	defer span.End()

	items, err := s.inner.Search(ctx, text)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search items")
	}
	s.metrics.recordSearch(ctx)
	span.SetAttributes(attribute.Int("item.count", len(items)))
	return items, nil
}

func (s *Service) AddComment(ctx context.Context, userID, itemID int64, text string) (*itemdomain.CommentView, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.AddComment", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	view, err := s.inner.AddComment(ctx, userID, itemID, text)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add comment", slog.Int64("item.id", itemID))
	}
	s.logInfo(ctx, "comment added", slog.Int64("item.id", itemID), slog.Int64("comment.id", view.ID))
	return view, nil
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
	itemsCreated metric.Int64Counter
	searches     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsCreated, _ := m.Int64Counter("items.service.created", metric.WithDescription("Number of items created"))
	searches, _ := m.Int64Counter("items.service.searches", metric.WithDescription("Number of item searches"))
	return serviceMetrics{itemsCreated: itemsCreated, searches: searches}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.itemsCreated != nil {
		m.itemsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context) {
	if m.searches != nil {
		m.searches.Add(ctx, 1)
	}
}

var _ itemports.Service = (*Service)(nil)
