package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func login(t *testing.T, r *gin.Engine, username, password string) map[string]interface{} {
	t.Helper()
	w, got := doJSON(t, r, "POST", "/api/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, "login body: %s", w.Body.String())
	return got
}

func TestLogin(t *testing.T) {
	r := New("test-secret").Router()

	got := login(t, r, "admin", "admin123")
	assert.Equal(t, "admin", got["username"])
	assert.Equal(t, "ADMIN", got["role"])
	assert.NotEmpty(t, got["token"])
	assert.NotEmpty(t, got["refreshToken"])

	w, got := doJSON(t, r, "POST", "/api/auth/login", `{"username":"admin","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", got["error"])
}

func TestRegister(t *testing.T) {
	r := New("test-secret").Router()

	w, got := doJSON(t, r, "POST", "/api/auth/register", `{"username":"carol","email":"carol@x.dev","password":"pw12345"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "carol", got["username"])
	assert.Equal(t, "USER", got["role"])
	assert.NotEmpty(t, got["token"])

	// duplicate username
	w, got = doJSON(t, r, "POST", "/api/auth/register", `{"username":"carol","email":"c2@x.dev","password":"pw12345"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, got["error"], "taken")
}

func TestRefreshToken(t *testing.T) {
	r := New("test-secret").Router()
	sess := login(t, r, "alice", "alice123")

	w, got := doJSON(t, r, "POST", "/api/auth/refresh-token", `{"refreshToken":"`+sess["refreshToken"].(string)+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, got["token"])

	w, got = doJSON(t, r, "POST", "/api/auth/refresh-token", `{"refreshToken":"bogus"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid refresh token", got["error"])
}

func TestLogoutInvalidatesRefreshTokens(t *testing.T) {
	r := New("test-secret").Router()
	sess := login(t, r, "alice", "alice123")

	w, _ := doJSON(t, r, "POST", "/api/auth/logout", "", sess["token"].(string))
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/auth/refresh-token", `{"refreshToken":"`+sess["refreshToken"].(string)+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductsArePublic(t *testing.T) {
	r := New("test-secret").Router()
	w, _ := doJSON(t, r, "GET", "/api/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.NotEmpty(t, products)
}

func TestOrdersRequireToken(t *testing.T) {
	r := New("test-secret").Router()
	w, got := doJSON(t, r, "GET", "/api/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", got["error"])
}

func TestOrderFlow(t *testing.T) {
	r := New("test-secret").Router()
	sess := login(t, r, "alice", "alice123")
	token := sess["token"].(string)

	body := `{"reference":"ref-1","items":[{"productId":1,"name":"Wireless Mouse","price":20,"qty":2}],"total":40}`
	w, got := doJSON(t, r, "POST", "/api/orders", body, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "CREATED", got["status"])
	orderID := got["id"]

	// resubmitting the same reference returns the original order
	w, got = doJSON(t, r, "POST", "/api/orders", body, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orderID, got["id"])

	w, _ = doJSON(t, r, "GET", "/api/orders", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestAdminEndpointsEnforceRole(t *testing.T) {
	r := New("test-secret").Router()

	user := login(t, r, "alice", "alice123")
	w, got := doJSON(t, r, "GET", "/api/admin/users", "", user["token"].(string))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admin role required", got["error"])

	admin := login(t, r, "admin", "admin123")
	w, _ = doJSON(t, r, "GET", "/api/admin/users", "", admin["token"].(string))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminProductLifecycle(t *testing.T) {
	r := New("test-secret").Router()
	admin := login(t, r, "admin", "admin123")
	token := admin["token"].(string)

	w, got := doJSON(t, r, "POST", "/api/admin/products", `{"name":"Webcam","price":59.9,"category":"peripherals"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := got["id"].(float64)
	assert.NotZero(t, id)

	w, _ = doJSON(t, r, "DELETE", "/api/admin/products/6", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, got = doJSON(t, r, "DELETE", "/api/admin/products/6", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product not found", got["error"])
}
