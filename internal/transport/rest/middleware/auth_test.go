package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakehub/internal/config"
	"stakehub/internal/service"
)

func TestRequireOwner(t *testing.T) {
	auth := service.NewAuthService(config.AuthConfig{Username: "admin", Password: "pw", JWTSecret: "secret"})
	resp, err := auth.Login("admin", "pw")
	require.NoError(t, err)

	var seen string
	h := NewAuthMiddleware(auth).RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetOwnerID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"bearer header", "Bearer " + resp.Token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + resp.Token, "", http.StatusOK},
		{"query token", "", "?token=" + resp.Token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + resp.Token, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest("GET", "/v1/dashboard"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, resp.OwnerID, seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}

func TestGetOwnerID_Empty(t *testing.T) {
	assert.Empty(t, GetOwnerID(httptest.NewRequest("GET", "/", nil).Context()))
}
