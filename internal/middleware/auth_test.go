package middleware_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RainerNsa/PhCityRent-sub000/internal/auth"
	"github.com/RainerNsa/PhCityRent-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const webhookSecret = "whsec-test"

func webhookRouter() *gin.Engine {
	router := gin.New()
	router.POST("/webhooks/payment", middleware.VerifyPaymentWebhook(webhookSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentWebhook_AcceptsValidSignature(t *testing.T) {
	body := `{"reference":"phcr-wh-sig"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(body))
	req.Header.Set("X-Payment-Signature", sign(body))

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyPaymentWebhook_RejectsMissingSignature(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(`{}`))

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyPaymentWebhook_RejectsTamperedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(`{"reference":"tampered"}`))
	req.Header.Set("X-Payment-Signature", sign(`{"reference":"original"}`))

	w := httptest.NewRecorder()
	webhookRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

const jwtSecret = "jwt-test-secret"

func authRouter() *gin.Engine {
	router := gin.New()
	router.GET("/payments/history", middleware.Auth(jwtSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenantID": c.GetString("tenantID")})
	})
	return router
}

func TestAuth_AcceptsValidBearerToken(t *testing.T) {
	tenantID := uuid.New()
	token, err := auth.GenerateJWT(tenantID, jwtSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	authRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenantID.String())
}

func TestAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/history", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	req.Header.Set("Authorization", "Token abc123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectsTokenFromWrongSecret(t *testing.T) {
	token, err := auth.GenerateJWT(uuid.New(), "some-other-secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	authRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
