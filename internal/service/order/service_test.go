package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/entity"
	"github.com/mandikart/mandikart/internal/messaging"
	catalogrepo "github.com/mandikart/mandikart/internal/repository/catalog"
	repo "github.com/mandikart/mandikart/internal/repository/order"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*entity.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	order.ID = f.nextID
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderRepo) ListByRetailer(_ context.Context, retailerID string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Order
	for _, order := range f.orders {
		if order.RetailerID == retailerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	products map[int64]*entity.Product
}

func (f *fakeCatalog) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalogrepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) List(_ context.Context, _ entity.Category) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, []byte, []byte) error { return nil }
func (noopPublisher) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}
func (noopPublisher) Topic() string { return "test" }

func newTestService(t *testing.T) (*Service, *fakeCatalog) {
	t.Helper()
	catalog := &fakeCatalog{products: map[int64]*entity.Product{
		1: {ID: 1, SupplierID: "supplier-1", Name: "Onions", Category: entity.CategoryVegetables, Unit: entity.UnitKilogram, PricePerUnit: 28},
	}}
	svc := NewService(Params{
		Repository: newFakeOrderRepo(),
		Catalog:    catalog,
		Config:     config.Config{},
		Logger:     zap.NewNop(),
		Publisher:  noopPublisher{},
		Clock:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	return svc, catalog
}

func TestPlaceOrder(t *testing.T) {
	svc, _ := newTestService(t)

	order, err := svc.Place(context.Background(), PlaceInput{
		RetailerID: "retailer-1",
		ProductID:  1,
		Quantity:   5,
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if order.Number == "" {
		t.Error("expected non-empty order number")
	}
	if order.Status != entity.OrderPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.UnitPrice != 28 {
		t.Errorf("unit price = %v, want snapshot 28", order.UnitPrice)
	}
	if order.Total != 140 {
		t.Errorf("total = %v, want 140", order.Total)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		in   PlaceInput
		kind errorbank.Kind
	}{
		{"missing retailer", PlaceInput{ProductID: 1, Quantity: 1}, errorbank.KindUnauthorized},
		{"zero quantity", PlaceInput{RetailerID: "retailer-1", ProductID: 1}, errorbank.KindBadRequest},
		{"unknown product", PlaceInput{RetailerID: "retailer-1", ProductID: 99, Quantity: 1}, errorbank.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Place(context.Background(), tt.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := errorbank.From(err).Kind(); kind != tt.kind {
				t.Errorf("kind = %q, want %q", kind, tt.kind)
			}
		})
	}
}

func TestGetOrder(t *testing.T) {
	svc, _ := newTestService(t)

	placed, err := svc.Place(context.Background(), PlaceInput{RetailerID: "retailer-1", ProductID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	got, err := svc.Get(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Number != placed.Number {
		t.Errorf("number = %q, want %q", got.Number, placed.Number)
	}

	if _, err := svc.Get(context.Background(), 404); errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Errorf("kind = %q, want not_found", errorbank.From(err).Kind())
	}
}
