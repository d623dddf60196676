package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/database"
	"github.com/mandikart/mandikart/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Products seeds example supplier listings if they are missing.
func (s *Seeder) Products(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.Product{
		{SupplierID: "seed-supplier-1", Name: "Onions", Category: entity.CategoryVegetables, Unit: entity.UnitKilogram, PricePerUnit: 28, StockQty: 500, CreatedAt: now, UpdatedAt: now},
		{SupplierID: "seed-supplier-1", Name: "Tomatoes", Category: entity.CategoryVegetables, Unit: entity.UnitKilogram, PricePerUnit: 35, StockQty: 300, CreatedAt: now, UpdatedAt: now},
		{SupplierID: "seed-supplier-2", Name: "Turmeric Powder", Category: entity.CategorySpices, Unit: entity.UnitKilogram, PricePerUnit: 180, StockQty: 80, CreatedAt: now, UpdatedAt: now},
		{SupplierID: "seed-supplier-2", Name: "Sunflower Oil", Category: entity.CategoryOil, Unit: entity.UnitLitre, PricePerUnit: 140, StockQty: 200, CreatedAt: now, UpdatedAt: now},
		{SupplierID: "seed-supplier-3", Name: "Paper Plates", Category: entity.CategoryPackaging, Unit: entity.UnitPacket, PricePerUnit: 60, StockQty: 1000, CreatedAt: now, UpdatedAt: now},
	}

	for _, sample := range samples {
		product := sample
		_, err := s.db.NewInsert().Model(&product).
			On("CONFLICT (supplier_id, name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded products", zap.Int("count", len(samples)))
	}
	return nil
}
