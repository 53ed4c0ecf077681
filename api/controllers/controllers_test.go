package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovenest/storefront/api/middleware"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/config"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type singleStore struct{ s *store.Store }

func (f singleStore) Get(context.Context, string) *store.Store { return f.s }

func TestHealthReadyReportsDependencyFailure(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	resp := httptest.NewRecorder()
	HealthReady(cfg, stubPinger{err: errors.New("redis down")}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "DEPENDENCY_ERROR")

	resp = httptest.NewRecorder()
	HealthReady(cfg, nil, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCartHandlersRequireSessionContext(t *testing.T) {
	s := store.New(context.Background(), store.Options{})
	t.Cleanup(func() { _ = s.Close() })

	resp := httptest.NewRecorder()
	CartGet(singleStore{s: s}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestCartAddItemUsesSessionStore(t *testing.T) {
	s := store.New(context.Background(), store.Options{})
	t.Cleanup(func() { _ = s.Close() })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"4","quantity":0}`))
	req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
	resp := httptest.NewRecorder()
	CartAddItem(catalog.Default(), singleStore{s: s}, nil).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, s.CartCount())
}

func TestCartUpdateItemCapsQuantity(t *testing.T) {
	s := store.New(context.Background(), store.Options{})
	t.Cleanup(func() { _ = s.Close() })
	rose, _ := catalog.Default().ProductByID("1")
	s.AddToCart(rose, 2)

	update := func(body string) *httptest.ResponseRecorder {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("productId", "1")
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/1", strings.NewReader(body))
		ctx := context.WithValue(middleware.WithSessionID(req.Context(), "sess-1"), chi.RouteCtxKey, rctx)
		resp := httptest.NewRecorder()
		CartUpdateItem(catalog.Default(), singleStore{s: s}, nil).ServeHTTP(resp, req.WithContext(ctx))
		return resp
	}

	resp := update(`{"quantity":100}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
	assert.Equal(t, 2, s.CartCount())

	resp = update(`{"quantity":99}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 99, s.CartCount())
}

func TestCheckoutStepWithoutService(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("step", "shipping")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/steps/shipping", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	resp := httptest.NewRecorder()
	CheckoutStep(nil, nil).ServeHTTP(resp, req)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
