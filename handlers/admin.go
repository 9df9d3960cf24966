// File: roombook/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"roombook/cron"
	"roombook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates operator-level operations.
type AdminHandler struct {
	Resetter *cron.Resetter
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(r *cron.Resetter) *AdminHandler {
	return &AdminHandler{Resetter: r}
}

// ResetHandler runs one daily reset cycle immediately.
func (ah *AdminHandler) ResetHandler(c *gin.Context) {
	n, err := ah.Resetter.Run(c.Request.Context())
	if errors.Is(err, cron.ErrResetInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	zap.L().Info("Manual reset completed", zap.Int64("removed", n))
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

// HealthHandler reports the last dependency health snapshot.
func (ah *AdminHandler) HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "health": status})
}
