package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dipulse/dipulse/internal/domain/models"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockCurveService{
		panel: &models.CurvePanel{
			StartDate:    time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			FinalDate:    time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
			BusinessDays: 1,
			Initial:      models.RateTable{Unit: models.UnitFraction},
			Final:        models.RateTable{Unit: models.UnitFraction},
		},
	}
	router := NewRouter(NewHandler(svc, 60))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/panel?data_inicio=2026-08-26&data_fim=2026-08-27", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Error("expected X-Request-ID header to be set")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["business_days"] != float64(1) {
		t.Errorf("expected business_days=1, got %v", body["business_days"])
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(NewHandler(&mockCurveService{panel: &models.CurvePanel{}}, 60))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
