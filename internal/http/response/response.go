package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope mirrors the shapes the web client already understands: a
// "message" on every failure, optionally joined by the raw completion
// (extraction failures) or the provider's detail (upstream failures).
type Envelope struct {
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Message: msg})
}

func MessageWithRaw(c *gin.Context, status int, msg, raw string) {
	c.JSON(status, Envelope{Message: msg, Raw: raw})
}

func MessageWithDetail(c *gin.Context, status int, msg, detail string) {
	c.JSON(status, Envelope{Message: msg, Detail: detail})
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
