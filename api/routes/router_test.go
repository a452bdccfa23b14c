package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	"github.com/angelmondragon/burgershop-backend/internal/terminals"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		Session: config.SessionConfig{DefaultTerminalID: "counter-1"},
	}
}

func newTestRouter(t *testing.T, dbP stubPinger) (http.Handler, *prometheus.Registry) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	reg := metrics.NewRegistry()

	manager, err := session.NewManager(session.Options{
		Catalog:         catalog.NewSeeded(),
		Authenticator:   session.NewPasswordAuthenticator(config.AdminConfig{Password: "admin123"}),
		CheeseSurcharge: decimal.NewFromInt(50),
		Logger:          logg,
		Metrics:         metrics.NewOrderMetrics(reg),
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	svc, err := terminals.NewService(manager, terminals.NewMemoryStore(), logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewRouter(testConfig(), logg, dbP, nil, svc, metrics.Handler(reg)), reg
}

func do(t *testing.T, h http.Handler, method, path, terminal, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if terminal != "" {
		req.Header.Set("X-Terminal-Id", terminal)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	if rec := do(t, router, http.MethodGet, "/health/live", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected live 200, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d", rec.Code)
	}

	down, _ := newTestRouter(t, stubPinger{err: errors.New("db gone")})
	if rec := do(t, down, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected ready 503 when db is down, got %d", rec.Code)
	}
}

func TestCatalogRoute(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	rec := do(t, router, http.MethodGet, "/api/v1/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 6 || body.Data[0].Name != "Cheeseburger" {
		t.Fatalf("unexpected catalog %+v", body.Data)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestTerminalsAreIsolated(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	if rec := do(t, router, http.MethodPut, "/api/v1/session/customer", "front", `{"customer_id":"A1"}`); rec.Code != http.StatusOK {
		t.Fatalf("set customer: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodPost, "/api/v1/order/items", "front", `{"item_name":"Bacon Burger"}`); rec.Code != http.StatusCreated {
		t.Fatalf("select: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(t, router, http.MethodGet, "/api/v1/order", "drive-thru", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on a terminal without a customer, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/order", "front", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "₹525.00 Rupees") {
		t.Fatalf("unexpected order body %s", rec.Body.String())
	}
}

func TestFullOrderOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	steps := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodPut, "/api/v1/session/customer", `{"customer_id":"C7"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/order/items", `{"item_name":"Cheeseburger","extra_cheese":true}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/order/items/current/add-ons", `{"name":"Lettuce"}`, http.StatusOK},
		{http.MethodPut, "/api/v1/order/items/current/extra-cheese", `{"enabled":true}`, http.StatusOK},
		{http.MethodPost, "/api/v1/order/items/current/done", "", http.StatusOK},
		{http.MethodPost, "/api/v1/order/items", `{"item_name":"Veggie Burger"}`, http.StatusCreated},
		{http.MethodDelete, "/api/v1/order/items/2", "", http.StatusOK},
	}
	for _, step := range steps {
		if rec := do(t, router, step.method, step.path, "", step.body); rec.Code != step.status {
			t.Fatalf("%s %s: expected %d, got %d: %s", step.method, step.path, step.status, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, router, http.MethodPost, "/api/v1/order/finish", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d", rec.Code)
	}
	var body struct {
		Data session.Receipt `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if !body.Data.Total.Equal(decimal.NewFromInt(475)) {
		t.Fatalf("expected total 475, got %s", body.Data.Total)
	}
	if body.Data.Message != "Order for customer ID C7 has been finished." {
		t.Fatalf("unexpected message %q", body.Data.Message)
	}
}

func TestAdminRoutes(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	if rec := do(t, router, http.MethodPost, "/api/v1/catalog", "", `{"name":"Paneer Burger","base_price":"350"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 outside admin mode, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodPost, "/api/v1/session/admin", "", `{"password":"admin123"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected admin login 200, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodPost, "/api/v1/catalog", "", `{"name":"Paneer Burger","base_price":"350"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 in admin mode, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodDelete, "/api/v1/session/admin", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected admin exit 200, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/api/v1/catalog", "kiosk", ""); !strings.Contains(rec.Body.String(), "Paneer Burger") {
		t.Fatalf("expected new item visible to every terminal, got %s", rec.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})

	do(t, router, http.MethodPost, "/api/v1/session/admin", "", `{"password":"wrong"}`)

	rec := do(t, router, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `burgershop_admin_logins_total{result="failed"} 1`) {
		t.Fatalf("expected failed admin login counter in metrics output")
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t, stubPinger{})
	if rec := do(t, router, http.MethodGet, "/api/v1/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
