package handlers

import (
	"net/http"

	"coachline/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest Mongo/Redis probe results. Degraded
// dependencies return 503 but the process keeps serving.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
