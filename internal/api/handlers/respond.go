// backend-go/internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/besco/backend-go/internal/analytics"
	"github.com/besco/backend-go/internal/domain"
)

const dateLayout = "2006-01-02"

// handleError translates domain errors into HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsInsufficientStock(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// parseDateRange reads optional start_date / end_date query params
// (YYYY-MM-DD) and falls back to the trailing year.
func parseDateRange(c *gin.Context) (analytics.DateRange, bool) {
	r := analytics.DefaultDateRange(time.Now())

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, "start_date must be YYYY-MM-DD")
			return analytics.DateRange{}, false
		}
		r.Start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, "end_date must be YYYY-MM-DD")
			return analytics.DateRange{}, false
		}
		r.End = parsed
	}
	if r.End.Before(r.Start) {
		badRequest(c, "end_date must not precede start_date")
		return analytics.DateRange{}, false
	}
	return r, true
}
