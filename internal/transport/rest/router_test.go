package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stakehub/internal/config"
	"stakehub/internal/model"
	"stakehub/internal/service"
	"stakehub/internal/transport/ws"
)

// newTestRouter wires only the services the assistant and auth routes touch
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop()
	hub := ws.NewHub(log)
	t.Cleanup(hub.Close)

	assistant := service.NewAssistantService(nil, log)
	return NewRouter(&Container{
		HTTP:           config.HTTPConfig{AllowedOrigins: "https://app.example"},
		AuthService:    service.NewAuthService(config.AuthConfig{Username: "admin", Password: "pw", JWTSecret: "secret"}),
		InsightService: service.NewInsightService(nil, nil, assistant, log),
		WSHub:          hub,
		Log:            log,
	})
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(h, "POST", "/v1/auth/login", "", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.OwnerID("admin"), resp.OwnerID)
	return resp.Token
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(h, "GET", "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stakehub_http_request_duration_seconds")
}

func TestRouter_Login(t *testing.T) {
	h := newTestRouter(t)
	login(t, h)

	rec := do(h, "POST", "/v1/auth/login", "", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, "POST", "/v1/auth/login", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_OwnerRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/v1/dashboard", "/v1/stakeholders", "/v1/engagements", "/v1/stakeholders/priority"} {
		rec := do(h, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := do(h, "GET", "/v1/dashboard", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, "OPTIONS", "/v1/stakeholders", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRouter_AssistantWithoutCompletionService(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h)

	rec := do(h, "POST", "/v1/ai/sentiment", token, `{"text":"great meeting"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sentiment":"neutral"}`, rec.Body.String())

	rec = do(h, "POST", "/v1/ai/action-items", token, `{"text":"send the deck"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"actionItems":"`+service.NotAvailable+`"}`, rec.Body.String())

	rec = do(h, "POST", "/v1/ai/sentiment", token, `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}
