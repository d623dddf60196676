package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mandikart/mandikart/internal/database"
	"github.com/mandikart/mandikart/internal/entity"
)

var repoTracer = otel.Tracer("github.com/mandikart/mandikart/repository/catalog")

// ErrNotFound is returned when a product is missing.
var ErrNotFound = errors.New("product not found")

// Repository encapsulates read/write access for supplier products.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new product.
func (r *Repository) Create(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Create", trace.WithAttributes(attribute.String("product.name", p.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(p).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches a product by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	p := new(entity.Product)
	err := r.reader.NewSelect().Model(p).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return p, nil
}

// List returns products, optionally filtered by category, newest first.
func (r *Repository) List(ctx context.Context, category entity.Category) ([]entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.List")
	defer span.End()

	var ps []entity.Product
	q := r.reader.NewSelect().Model(&ps).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return ps, nil
}
