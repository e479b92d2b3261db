package obs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandlers backs the probe endpoints. Livez answers as long as the
// process serves requests; Readyz additionally runs the injected dependency
// check (a storage ping in mongo mode).
type HealthHandlers struct {
	Ready func() error
}

func (h HealthHandlers) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h HealthHandlers) Readyz(c *gin.Context) {
	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
