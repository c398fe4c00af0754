package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthEndpoints(t *testing.T) {
	cases := []struct {
		name       string
		ping       func() error
		path       string
		wantStatus int
	}{
		{name: "healthz always ok", ping: nil, path: "/healthz", wantStatus: 200},
		{name: "readyz ok", ping: func() error { return nil }, path: "/readyz", wantStatus: 200},
		{name: "readyz degraded", ping: func() error { return errors.New("down") }, path: "/readyz", wantStatus: 503},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			NewHealthHandler(tc.ping).Register(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}
