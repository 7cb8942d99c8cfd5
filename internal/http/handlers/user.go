package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/explainmycode-backend/internal/http/response"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

// POST /api/auth/sync-user
// body: { "uid": "...", "email": "..." }
func (uh *UserHandler) SyncUser(c *gin.Context) {
	var req struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "uid and email are required")
		return
	}

	user, err := uh.userService.SyncUser(c.Request.Context(), req.UID, req.Email)
	if err != nil {
		respondServiceError(c, uh.log, err)
		return
	}
	response.OK(c, user)
}
