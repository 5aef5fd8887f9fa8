package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Status answers with the status code asked for. Only 404 is supported;
// anything else is a 400.
func (h *Handler) Status(c *gin.Context) {
	if c.Query("code") == "404" {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "message": "not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": "invalid code"})
}

// Echo returns the posted JSON object with the server time added.
func (h *Handler) Echo(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		abortWithError(c, badRequest(malformedBodyMessage, ""))
		return
	}
	body["timestamp"] = h.now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, body)
}

func (h *Handler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (h *Handler) Readiness(c *gin.Context) {
	if h.readiness != nil && !h.readiness.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
