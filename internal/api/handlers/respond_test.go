package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/besco/backend-go/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestHandleErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.NotFoundf("customer %q", "x"), http.StatusNotFound},
		{"validation", domain.Validationf("bad quantity"), http.StatusBadRequest},
		{"conflict", domain.Conflictf("material %q", "x"), http.StatusConflict},
		{"unauthorized", domain.Unauthorizedf("bad password"), http.StatusUnauthorized},
		{"insufficient stock", &domain.InsufficientStockError{MaterialName: "콜롬비아", Required: 7.2, Available: 5}, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(t, "/api/orders")
			handleError(c, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	c, rec := testContext(t, "/api/orders")
	handleError(c, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestParseDateRangeDefaults(t *testing.T) {
	c, _ := testContext(t, "/api/analytics/profit/summary")

	r, ok := parseDateRange(c)
	require.True(t, ok)
	assert.Equal(t, 365*24*time.Hour, r.End.Sub(r.Start))
}

func TestParseDateRangeExplicit(t *testing.T) {
	c, _ := testContext(t, "/api/analytics/profit/summary?start_date=2024-01-01&end_date=2024-03-31")

	r, ok := parseDateRange(c)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", r.Start.Format(dateLayout))
	assert.Equal(t, "2024-03-31", r.End.Format(dateLayout))
}

func TestParseDateRangeRejectsBadInput(t *testing.T) {
	c, rec := testContext(t, "/api/analytics/profit/summary?start_date=01-01-2024")
	_, ok := parseDateRange(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = testContext(t, "/api/analytics/profit/summary?start_date=2024-03-31&end_date=2024-01-01")
	_, ok = parseDateRange(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
