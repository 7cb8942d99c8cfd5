package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/explainmycode-backend/internal/http/response"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/services"
)

type ExplanationHandler struct {
	log                *logger.Logger
	explanationService services.ExplanationService
}

func NewExplanationHandler(log *logger.Logger, explanationService services.ExplanationService) *ExplanationHandler {
	return &ExplanationHandler{
		log:                log.With("handler", "ExplanationHandler"),
		explanationService: explanationService,
	}
}

// POST /api/explanations/generate
// body: { "code": "...", "language": "go" }
func (eh *ExplanationHandler) Generate(c *gin.Context) {
	var req struct {
		Code     string `json:"code"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "code is required")
		return
	}

	parsed, err := eh.explanationService.Generate(c.Request.Context(), req.Code, req.Language)
	if err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.OK(c, parsed)
}

// POST /api/explanations/save
// body: { "uid": "...", ...explanation fields }
func (eh *ExplanationHandler) Save(c *gin.Context) {
	var req struct {
		UID string `json:"uid"`
		services.ExplanationSaveInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "uid is required")
		return
	}

	saved, err := eh.explanationService.Save(c.Request.Context(), req.UID, req.ExplanationSaveInput)
	if err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.Created(c, saved)
}

// GET /api/explanations/:id
func (eh *ExplanationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "Invalid id")
	if !ok {
		return
	}
	row, err := eh.explanationService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.OK(c, row)
}

// PUT /api/explanations/:id
// body: { "explanation": "...", "complexity": "...", "language": "..." }
func (eh *ExplanationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Invalid explanation id")
	if !ok {
		return
	}
	var req struct {
		Explanation string `json:"explanation"`
		Complexity  string `json:"complexity"`
		Language    string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := eh.explanationService.Update(c.Request.Context(), id, req.Explanation, req.Complexity, req.Language)
	if err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.OK(c, updated)
}

// DELETE /api/explanations/:id
func (eh *ExplanationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Invalid id")
	if !ok {
		return
	}
	if err := eh.explanationService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.Message(c, http.StatusOK, "Explanation deleted")
}

// GET /api/explanations/user?uid=...
func (eh *ExplanationHandler) ListByUser(c *gin.Context) {
	uid := c.Query("uid")
	rows, err := eh.explanationService.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, eh.log, err)
		return
	}
	response.OK(c, rows)
}

// parseID validates a caller-supplied record id before it gets
// anywhere near the store. Malformed ids are a client error, not a
// lookup miss.
func parseID(c *gin.Context, badIDMessage string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Message(c, http.StatusBadRequest, badIDMessage)
		return uuid.Nil, false
	}
	return id, true
}
