package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/finoffice/finoffice_backend/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the chart routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/charts", h.chart)
}

func (h *reportingHandler) chart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ChartParams{
		Type:   c.Query("type"),
		Bucket: c.DefaultQuery("bucket", "MONTH"),
	}
	if v := c.Query("planned"); v != "" {
		planned, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid planned, want true or false"})
			return
		}
		params.Planned = &planned
	}

	var err error
	params.PeriodFrom, err = time.Parse(time.DateOnly, c.Query("period_from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_from, want YYYY-MM-DD"})
		return
	}
	params.PeriodTo, err = time.Parse(time.DateOnly, c.Query("period_to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_to, want YYYY-MM-DD"})
		return
	}

	chart, err := h.reportingService.Chart(c.Request.Context(), params)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to build chart")
		return
	}
	c.JSON(http.StatusOK, chart)
}
