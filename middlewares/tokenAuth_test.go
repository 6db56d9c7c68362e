package middlewares

import (
	"CarePoint/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/secure").Use(TokenAuthMiddleware())
	if len(roles) > 0 {
		group = group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		userID, err := ExtractUserIDFromContext(c.Request.Context())
		if err != nil {
			RespondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		RespondData(c, http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure/ping", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestTokenAuthMiddleware(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := utils.GenerateAccessToken("42", utils.RolePatient)
	require.NoError(t, err)

	rec := doRequest(protectedRouter(), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)

	// Missing token.
	rec = doRequest(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope = decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Message)

	// Garbage token.
	rec = doRequest(protectedRouter(), "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestTokenAuthQueryFallback(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := utils.GenerateAccessToken("42", utils.RolePatient)
	require.NoError(t, err)

	router := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/secure/ping?accessToken="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	patientToken, err := utils.GenerateAccessToken("42", utils.RolePatient)
	require.NoError(t, err)
	adminToken, err := utils.GenerateAccessToken("1", utils.RoleAdmin)
	require.NoError(t, err)

	adminOnly := protectedRouter(utils.RoleAdmin)

	rec := doRequest(adminOnly, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(adminOnly, patientToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
}

func TestEnvelopeShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/data", func(c *gin.Context) { RespondData(c, http.StatusOK, gin.H{"k": "v"}) })
	router.GET("/message", func(c *gin.Context) { RespondMessage(c, http.StatusOK, "done") })
	router.GET("/error", func(c *gin.Context) { RespondError(c, http.StatusConflict, "taken") })

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	assert.Contains(t, raw, "data")
	assert.NotContains(t, raw, "message")

	req = httptest.NewRequest(http.MethodGet, "/message", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	raw = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	assert.Equal(t, "done", raw["message"])
	assert.NotContains(t, raw, "data")

	req = httptest.NewRequest(http.MethodGet, "/error", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	raw = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, "taken", raw["message"])
}
