package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/explainmycode-backend/internal/http/handlers"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
)

// Building the router catches route-tree conflicts (gin panics at
// registration time), so this test is mostly about the tree shape.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewRouter(RouterConfig{
		Log:                log,
		HealthHandler:      handlers.NewHealthHandler(),
		UserHandler:        handlers.NewUserHandler(log, nil),
		ExplanationHandler: handlers.NewExplanationHandler(log, nil),
		TutorialHandler:    handlers.NewTutorialHandler(log, nil),
	})
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("body: got %q want %q", rec.Body.String(), "ok")
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
}

func TestTraceHeadersAttached(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatal("missing X-Trace-Id header")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("missing X-Request-Id header")
	}
}
