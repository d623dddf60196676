package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/entity"
	repo "github.com/mandikart/mandikart/internal/repository/catalog"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/mandikart/mandikart/service/catalog")

// Repository is the persistence contract for supplier products.
type Repository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, category entity.Category) ([]entity.Product, error)
}

// Service holds catalog business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Logger     *zap.Logger
	Clock      func() time.Time `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	now := p.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{repo: p.Repository, logger: p.Logger, now: now}
}

// CreateInput carries the supplier-provided fields for a new listing.
type CreateInput struct {
	SupplierID   string
	Name         string
	Category     string
	Unit         string
	PricePerUnit float64
	StockQty     int
}

// Create validates and persists a new product listing.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.Create", trace.WithAttributes(attribute.String("product.name", in.Name)))
	defer span.End()

	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, errorbank.Unauthorized("supplier id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errorbank.BadRequest("product name is required")
	}
	category, err := entity.ParseCategory(in.Category)
	if err != nil {
		return nil, errorbank.BadRequest("invalid category", errorbank.WithDetail("category", in.Category))
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return nil, errorbank.BadRequest("invalid unit", errorbank.WithDetail("unit", in.Unit))
	}
	if in.PricePerUnit <= 0 {
		return nil, errorbank.BadRequest("price must be positive")
	}
	if in.StockQty < 0 {
		return nil, errorbank.BadRequest("stock cannot be negative")
	}

	now := s.now().UTC()
	p := &entity.Product{
		SupplierID:   in.SupplierID,
		Name:         strings.TrimSpace(in.Name),
		Category:     category,
		Unit:         unit,
		PricePerUnit: in.PricePerUnit,
		StockQty:     in.StockQty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}
	return p, nil
}

// Get retrieves a product by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}
	return p, nil
}

// List returns listings, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.List")
	defer span.End()

	var filter entity.Category
	if category != "" {
		parsed, err := entity.ParseCategory(category)
		if err != nil {
			return nil, errorbank.BadRequest("invalid category", errorbank.WithDetail("category", category))
		}
		filter = parsed
	}

	ps, err := s.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list products", errorbank.WithCause(err))
	}
	return ps, nil
}
