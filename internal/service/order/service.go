package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/entity"
	"github.com/mandikart/mandikart/internal/messaging"
	catalogrepo "github.com/mandikart/mandikart/internal/repository/catalog"
	repo "github.com/mandikart/mandikart/internal/repository/order"
	catalogsvc "github.com/mandikart/mandikart/internal/service/catalog"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/mandikart/mandikart/service/order")

// Repository is the persistence contract for direct orders.
type Repository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	ListByRetailer(ctx context.Context, retailerID string) ([]entity.Order, error)
}

// Service encapsulates business logic around direct orders.
type Service struct {
	repo      Repository
	catalog   catalogsvc.Repository
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Catalog    catalogsvc.Repository
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
	Clock      func() time.Time `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	now := p.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      p.Repository,
		catalog:   p.Catalog,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		now: now,
	}
}

// PlaceInput carries the fields needed to place a direct order.
type PlaceInput struct {
	RetailerID string
	ProductID  int64
	Quantity   int
}

// Place validates the input against the catalog, snapshots the unit price,
// and persists a pending order.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Place", trace.WithAttributes(attribute.Int64("product.id", in.ProductID)))
	defer span.End()

	if strings.TrimSpace(in.RetailerID) == "" {
		return nil, errorbank.Unauthorized("retailer id is required")
	}
	if in.Quantity < 1 {
		return nil, errorbank.BadRequest("quantity must be at least 1", errorbank.WithDetail("quantity", in.Quantity))
	}

	product, err := s.catalog.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}

	now := s.now().UTC()
	order := &entity.Order{
		Number:     uuid.NewString(),
		RetailerID: in.RetailerID,
		ProductID:  product.ID,
		Quantity:   in.Quantity,
		UnitPrice:  product.PricePerUnit,
		Total:      float64(in.Quantity) * product.PricePerUnit,
		Status:     entity.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	s.publishOrderPlaced(ctx, order)
	return order, nil
}

// Get retrieves an order by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// ListForRetailer returns the caller's orders, newest first.
func (s *Service) ListForRetailer(ctx context.Context, retailerID string) ([]entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ListForRetailer", trace.WithAttributes(attribute.String("retailer.id", retailerID)))
	defer span.End()

	if strings.TrimSpace(retailerID) == "" {
		return nil, errorbank.Unauthorized("retailer id is required")
	}
	orders, err := s.repo.ListByRetailer(ctx, retailerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}
	return orders, nil
}

func (s *Service) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderPlacedEvent{
		ID:         order.ID,
		Number:     order.Number,
		RetailerID: order.RetailerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		Total:      order.Total,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order placed", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order placed", zap.Error(err))
		}
	}
}

// OrderPlacedEvent is emitted when a direct order is persisted.
type OrderPlacedEvent struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	RetailerID string    `json:"retailer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
