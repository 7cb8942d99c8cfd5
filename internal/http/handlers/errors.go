package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/explainmycode-backend/internal/extract"
	"github.com/yungbote/explainmycode-backend/internal/http/response"
	"github.com/yungbote/explainmycode-backend/internal/platform/apierr"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/services"
)

// respondServiceError is the single place service failures become HTTP
// answers. Classified errors keep their status and user-facing message;
// anything unclassified is logged and flattened to a generic 500 so no
// internal detail leaks.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		log.Error("Unhandled request error", "path", c.Request.URL.Path, "error", err)
		response.Message(c, http.StatusInternalServerError, "Server error")
		return
	}

	msg := ae.Error()
	switch ae.Code {
	case "ai_no_json_object":
		msg = "AI returned no JSON object"
	case "ai_invalid_json", "ai_extraction_failed":
		msg = "AI returned invalid JSON"
	case "groq_request_failed", "groq_unreachable":
		msg = "GROQ request failed"
	}

	var xe *extract.Error
	if errors.As(err, &xe) {
		response.MessageWithRaw(c, ae.Status, msg, xe.Raw)
		return
	}

	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		response.MessageWithDetail(c, ae.Status, msg, ue.Body)
		return
	}
	if ae.Code == "groq_unreachable" && ae.Err != nil {
		response.MessageWithDetail(c, ae.Status, msg, ae.Err.Error())
		return
	}

	response.Message(c, ae.Status, msg)
}
