// backend-go/internal/api/handlers/analytics_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/besco/backend-go/internal/analytics"
	"github.com/besco/backend-go/internal/service"
)

type AnalyticsHandler struct {
	service *service.ProfitService
}

func NewAnalyticsHandler(service *service.ProfitService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) GetByProduct(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}
	rows, err := h.service.ByProduct(c.Request.Context(), r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) GetByCustomer(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}
	rows, err := h.service.ByCustomer(c.Request.Context(), r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMonthly accepts either an explicit start_date/end_date window or a
// ?year= shortcut covering that calendar year.
func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	var (
		r  analytics.DateRange
		ok bool
	)
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2100 {
			badRequest(c, "year must be a four digit year")
			return
		}
		r = analytics.DateRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	} else if r, ok = parseDateRange(c); !ok {
		return
	}

	rows, err := h.service.Monthly(c.Request.Context(), r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
