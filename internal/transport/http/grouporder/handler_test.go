package grouporder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/entity"
	repo "github.com/mandikart/mandikart/internal/repository/grouporder"
	service "github.com/mandikart/mandikart/internal/service/grouporder"
	"github.com/mandikart/mandikart/internal/transport/http/middleware"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*entity.GroupOrder
}

func (f *memRepo) Create(_ context.Context, g *entity.GroupOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g.ID = f.nextID
	for i := range g.Memberships {
		g.Memberships[i].GroupOrderID = g.ID
	}
	cp := *g
	cp.Memberships = append([]entity.Membership(nil), g.Memberships...)
	f.orders[g.ID] = &cp
	return nil
}

func (f *memRepo) GetByID(_ context.Context, id int64) (*entity.GroupOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *g
	cp.Memberships = append([]entity.Membership(nil), g.Memberships...)
	return &cp, nil
}

func (f *memRepo) GetByReference(_ context.Context, ref string) (*entity.GroupOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.orders {
		if g.Reference == ref {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *memRepo) ListActive(_ context.Context) ([]entity.GroupOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.GroupOrder
	for _, g := range f.orders {
		if g.Status == entity.GroupOrderActive {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func (f *memRepo) UpsertMembership(_ context.Context, m *entity.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.orders[m.GroupOrderID]
	if !ok {
		return repo.ErrNotFound
	}
	for i := range g.Memberships {
		if g.Memberships[i].UserID == m.UserID {
			g.Memberships[i].Quantity = m.Quantity
			return nil
		}
	}
	g.Memberships = append(g.Memberships, *m)
	return nil
}

func (f *memRepo) MarkCompleted(_ context.Context, id int64) (bool, error) { return false, nil }
func (f *memRepo) MarkExpired(_ context.Context, id int64) (bool, error)   { return false, nil }

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		GroupOrders: config.GroupOrders{PollInterval: 30 * time.Second},
	}
	svc := service.NewService(service.Params{
		Repository: &memRepo{orders: make(map[int64]*entity.GroupOrder)},
		Config:     cfg,
		Logger:     zap.NewNop(),
	})

	e := echo.New()
	e.Use(middleware.Identity())
	Register(e, NewHandler(svc, cfg))
	return e
}

func createCampaign(t *testing.T, e *echo.Echo, userID string) map[string]any {
	t.Helper()

	body := `{"item_name":"Onions","category":"vegetables","target_price":25,"unit":"kg","min_vendors":3,"deadline":"2030-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/group-orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.HeaderUserID, userID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCreateRequiresIdentity(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/group-orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCreateAndJoinOverHTTP(t *testing.T) {
	e := newTestServer(t)

	data := createCampaign(t, e, "retailer-1")
	if data["status"] != "active" {
		t.Errorf("status = %v, want active", data["status"])
	}
	if data["member_count"].(float64) != 1 {
		t.Errorf("member_count = %v, want 1", data["member_count"])
	}
	if data["is_member"] != true {
		t.Error("creator should be a member")
	}

	req := httptest.NewRequest(http.MethodPost, "/group-orders/1/join", strings.NewReader(`{"quantity":4}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.HeaderUserID, "retailer-2")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			MemberCount   int `json:"member_count"`
			TotalQuantity int `json:"total_quantity"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.MemberCount != 2 {
		t.Errorf("member_count = %d, want 2", envelope.Data.MemberCount)
	}
	if envelope.Data.TotalQuantity != 5 {
		t.Errorf("total_quantity = %d, want 5", envelope.Data.TotalQuantity)
	}
}

func TestListActiveMeta(t *testing.T) {
	e := newTestServer(t)
	createCampaign(t, e, "retailer-1")

	req := httptest.NewRequest(http.MethodGet, "/group-orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope struct {
		Data []json.RawMessage `json:"data"`
		Meta map[string]any    `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Errorf("campaigns = %d, want 1", len(envelope.Data))
	}
	if envelope.Meta["poll_interval_seconds"].(float64) != 30 {
		t.Errorf("poll_interval_seconds = %v, want 30", envelope.Meta["poll_interval_seconds"])
	}
}

func TestJoinUnknownCampaign(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/group-orders/999/join", strings.NewReader(`{"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.HeaderUserID, "retailer-2")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
