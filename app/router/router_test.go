package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/app/controller"
	"legacy-peptides/cart"
)

func testControllers(t *testing.T) *Controllers {
	registry, err := cart.NewRegistry(4)
	require.NoError(t, err)
	sessions := controller.NewSessionManager("router-test-secret-router-test-secret", false, registry)
	return &Controllers{
		Cart: controller.NewCartController(sessions, nil),
	}
}

func TestSetupRoutes_AdminGate(t *testing.T) {
	mux := http.NewServeMux()
	SetupRoutes(mux, testControllers(t), false)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSetupRoutes_CartDispatchByMethod(t *testing.T) {
	mux := http.NewServeMux()
	SetupRoutes(mux, testControllers(t), false)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
