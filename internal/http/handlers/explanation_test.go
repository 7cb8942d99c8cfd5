package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/explainmycode-backend/internal/extract"
	"github.com/yungbote/explainmycode-backend/internal/platform/apierr"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/services"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type stubExplanationService struct {
	generateResult map[string]any
	generateErr    error
	getResult      *types.Explanation
	getErr         error
	updateErr      error
	deleteErr      error
	listResult     []*types.Explanation
	listErr        error
	saveResult     *types.Explanation
	saveErr        error
}

func (s *stubExplanationService) Generate(ctx context.Context, code, language string) (map[string]any, error) {
	return s.generateResult, s.generateErr
}
func (s *stubExplanationService) Save(ctx context.Context, externalUID string, input services.ExplanationSaveInput) (*types.Explanation, error) {
	return s.saveResult, s.saveErr
}
func (s *stubExplanationService) Get(ctx context.Context, id uuid.UUID) (*types.Explanation, error) {
	return s.getResult, s.getErr
}
func (s *stubExplanationService) Update(ctx context.Context, id uuid.UUID, explanation, complexity, language string) (*types.Explanation, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.getResult, nil
}
func (s *stubExplanationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteErr
}
func (s *stubExplanationService) ListByUser(ctx context.Context, externalUID string) ([]*types.Explanation, error) {
	return s.listResult, s.listErr
}

var _ services.ExplanationService = (*stubExplanationService)(nil)

func handlerTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newExplanationRouter(t *testing.T, svc services.ExplanationService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewExplanationHandler(handlerTestLogger(t), svc)
	r.POST("/api/explanations/generate", h.Generate)
	r.POST("/api/explanations/save", h.Save)
	r.GET("/api/explanations/user", h.ListByUser)
	r.GET("/api/explanations/:id", h.GetByID)
	r.PUT("/api/explanations/:id", h.Update)
	r.DELETE("/api/explanations/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestGenerateReturnsParsedObject(t *testing.T) {
	svc := &stubExplanationService{
		generateResult: map[string]any{"summary": "adds two numbers", "timeComplexity": "O(1)"},
	}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/api/explanations/generate", gin.H{"code": "a+b", "language": "go"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200, body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["summary"] != "adds two numbers" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGenerateNoJSONObjectIsGatewayError(t *testing.T) {
	raw := "Sorry, I can only answer in prose."
	svc := &stubExplanationService{
		generateErr: apierr.New(http.StatusBadGateway, "ai_no_json_object",
			&extract.Error{Kind: extract.ErrNoJSONObject, Raw: raw}),
	}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/api/explanations/generate", gin.H{"code": "a+b"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d want 502", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "AI returned no JSON object" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["raw"] != raw {
		t.Fatalf("raw completion not surfaced: %v", body["raw"])
	}
}

func TestGenerateMalformedJSONIsServerError(t *testing.T) {
	svc := &stubExplanationService{
		generateErr: apierr.New(http.StatusInternalServerError, "ai_invalid_json",
			&extract.Error{Kind: extract.ErrMalformedJSON, Raw: "{broken", Err: errors.New("unexpected end")}),
	}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/api/explanations/generate", gin.H{"code": "a+b"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "AI returned invalid JSON" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["raw"] != "{broken" {
		t.Fatalf("raw completion not surfaced: %v", body["raw"])
	}
}

func TestGenerateUpstreamFailureCarriesDetail(t *testing.T) {
	svc := &stubExplanationService{
		generateErr: apierr.New(http.StatusBadGateway, "groq_request_failed",
			&services.UpstreamError{StatusCode: 429, Body: `{"error":"rate limited"}`}),
	}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/api/explanations/generate", gin.H{"code": "a+b"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d want 502", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "GROQ request failed" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["detail"] != `{"error":"rate limited"}` {
		t.Fatalf("upstream detail not surfaced: %v", body["detail"])
	}
}

func TestGetRejectsMalformedID(t *testing.T) {
	r := newExplanationRouter(t, &stubExplanationService{})

	rec := doJSON(t, r, http.MethodGet, "/api/explanations/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid id" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestGetMissingExplanationIs404(t *testing.T) {
	svc := &stubExplanationService{
		getErr: apierr.New(http.StatusNotFound, "explanation_not_found", errors.New("Explanation not found")),
	}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodGet, "/api/explanations/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Explanation not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestUpdateRejectsMalformedID(t *testing.T) {
	r := newExplanationRouter(t, &stubExplanationService{})

	rec := doJSON(t, r, http.MethodPut, "/api/explanations/123", gin.H{"explanation": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid explanation id" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestDeleteAcknowledges(t *testing.T) {
	r := newExplanationRouter(t, &stubExplanationService{})

	rec := doJSON(t, r, http.MethodDelete, "/api/explanations/"+uuid.NewString(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Explanation deleted" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestUnclassifiedErrorIsGenericServerError(t *testing.T) {
	svc := &stubExplanationService{generateErr: errors.New("pg connection reset by peer")}
	r := newExplanationRouter(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/api/explanations/generate", gin.H{"code": "a+b"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Server error" {
		t.Fatalf("internal detail leaked: %v", body)
	}
	if _, leaked := body["detail"]; leaked {
		t.Fatalf("internal detail leaked: %v", body)
	}
}
