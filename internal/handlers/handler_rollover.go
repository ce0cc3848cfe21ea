package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/middleware"
)

type rolloverHandler struct {
	rolloverService portssvc.RolloverSvc
}

func newRolloverHandler(rs portssvc.RolloverSvc) *rolloverHandler {
	return &rolloverHandler{rolloverService: rs}
}

// registerRolloverRoutes registers the annual rollover trigger.
func registerRolloverRoutes(rg *gin.RouterGroup, rolloverService portssvc.RolloverSvc) {
	h := newRolloverHandler(rolloverService)

	rg.POST("/planned/rollover", h.runRollover)
}

// runRollover plants recurring transaction groups into the target year,
// defaulting to the current one. Invoke at most once per year: planting
// the same year twice duplicates its series.
func (h *rolloverHandler) runRollover(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now()
	year := now.Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}

	report, err := h.rolloverService.Run(c.Request.Context(), year, now)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to run rollover")
		return
	}
	c.JSON(http.StatusOK, report)
}
