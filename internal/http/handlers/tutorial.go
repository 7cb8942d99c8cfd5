package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/explainmycode-backend/internal/http/response"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/services"
)

type TutorialHandler struct {
	log             *logger.Logger
	tutorialService services.TutorialService
}

func NewTutorialHandler(log *logger.Logger, tutorialService services.TutorialService) *TutorialHandler {
	return &TutorialHandler{
		log:             log.With("handler", "TutorialHandler"),
		tutorialService: tutorialService,
	}
}

// POST /api/explanations/learn
// body: { "topic": "...", "level": "beginner", "category": "algorithm", "language": "go" }
func (th *TutorialHandler) Generate(c *gin.Context) {
	var req struct {
		Topic    string `json:"topic"`
		Level    string `json:"level"`
		Category string `json:"category"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "topic is required")
		return
	}

	parsed, err := th.tutorialService.Generate(c.Request.Context(), req.Topic, req.Level, req.Category, req.Language)
	if err != nil {
		respondServiceError(c, th.log, err)
		return
	}
	response.OK(c, parsed)
}

// POST /api/explanations/learn/save
// body: { "uid": "...", "topic": "...", "level": "...", "category": "...", "language": "...", "tutorial": {...} }
func (th *TutorialHandler) Save(c *gin.Context) {
	var req struct {
		UID string `json:"uid"`
		services.TutorialSaveInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "uid is required")
		return
	}

	saved, err := th.tutorialService.Save(c.Request.Context(), req.UID, req.TutorialSaveInput)
	if err != nil {
		respondServiceError(c, th.log, err)
		return
	}
	response.Created(c, saved)
}

// GET /api/explanations/learn/:id
func (th *TutorialHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "Invalid id")
	if !ok {
		return
	}
	row, err := th.tutorialService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, th.log, err)
		return
	}
	response.OK(c, row)
}

// DELETE /api/explanations/learn/:id
func (th *TutorialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Invalid id")
	if !ok {
		return
	}
	if err := th.tutorialService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, th.log, err)
		return
	}
	response.Message(c, http.StatusOK, "Tutorial deleted")
}

// GET /api/explanations/learn/user?uid=...
func (th *TutorialHandler) ListByUser(c *gin.Context) {
	uid := c.Query("uid")
	rows, err := th.tutorialService.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, th.log, err)
		return
	}
	response.OK(c, rows)
}
