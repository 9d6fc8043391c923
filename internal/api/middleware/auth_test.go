package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/besco/backend-go/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	apiKey string
	tokens map[string]string
}

func (f *fakeVerifier) VerifyAPIKey(key string) bool {
	return f.apiKey != "" && key == f.apiKey
}

func (f *fakeVerifier) VerifyToken(token string) (string, error) {
	username, ok := f.tokens[token]
	if !ok {
		return "", domain.Unauthorizedf("invalid or expired token")
	}
	return username, nil
}

func protectedRouter(verifier Verifier) *gin.Engine {
	router := gin.New()
	router.GET("/secure", RequireAuth(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UsernameKey)})
	})
	return router
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := protectedRouter(&fakeVerifier{})
	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
}

func TestRequireAuthWrongScheme(t *testing.T) {
	router := protectedRouter(&fakeVerifier{apiKey: "ops-key"})
	assert.Equal(t, http.StatusUnauthorized, request(router, "Basic ops-key").Code)
}

func TestRequireAuthAPIKey(t *testing.T) {
	router := protectedRouter(&fakeVerifier{apiKey: "ops-key"})

	rec := request(router, "Bearer ops-key")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":""`)
}

func TestRequireAuthToken(t *testing.T) {
	router := protectedRouter(&fakeVerifier{tokens: map[string]string{"jwt-abc": "admin"}})

	rec := request(router, "Bearer jwt-abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)
}

func TestRequireAuthInvalidCredential(t *testing.T) {
	router := protectedRouter(&fakeVerifier{apiKey: "ops-key"})
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer wrong").Code)
}
