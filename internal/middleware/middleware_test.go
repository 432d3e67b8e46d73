package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-32-characters"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"uid":  "user-abc",
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
}

func identityEcho(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID":   c.GetString("userID"),
		"userRole": c.GetString("userRole"),
	})
}

func setupAuthRouter() *gin.Engine {
	SetJWTSecret(testSecret)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/required", JWTAuth(), identityEcho)
	router.GET("/optional", OptionalAuth(), identityEcho)
	router.GET("/ws", WebSocketAuth(), identityEcho)
	return router
}

func TestJWTAuthValidToken(t *testing.T) {
	router := setupAuthRouter()

	req := httptest.NewRequest("GET", "/required", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-abc")
	assert.Contains(t, w.Body.String(), "customer")
}

func TestJWTAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	router := setupAuthRouter()

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/required", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router := setupAuthRouter()

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	req := httptest.NewRequest("GET", "/required", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsMissingClaims(t *testing.T) {
	router := setupAuthRouter()

	testCases := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{name: "no uid", mutate: func(c jwt.MapClaims) { delete(c, "uid") }},
		{name: "empty uid", mutate: func(c jwt.MapClaims) { c["uid"] = "" }},
		{name: "no role", mutate: func(c jwt.MapClaims) { delete(c, "role") }},
		{name: "unknown role", mutate: func(c jwt.MapClaims) { c["role"] = "superuser" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims := validClaims()
			tc.mutate(claims)

			req := httptest.NewRequest("GET", "/required", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	router := setupAuthRouter()

	req := httptest.NewRequest("GET", "/optional", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":""`)
}

func TestOptionalAuthExtractsIdentityWhenPresent(t *testing.T) {
	router := setupAuthRouter()

	req := httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-abc")
}

func TestOptionalAuthRejectsInvalidToken(t *testing.T) {
	router := setupAuthRouter()

	req := httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebSocketAuthTokenQueryParam(t *testing.T) {
	router := setupAuthRouter()

	req := httptest.NewRequest("GET", "/ws?token="+signToken(t, validClaims()), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-abc")

	// No token means an anonymous subscription, not a rejection.
	req = httptest.NewRequest("GET", "/ws", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":""`)
}
