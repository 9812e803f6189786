package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-performance-api/internal/api/handler/router"
	"github.com/vfg2006/ad-performance-api/internal/config"
	"github.com/vfg2006/ad-performance-api/internal/usecases/authenticating"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(t *testing.T) router.Router {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	require.NoError(t, err)

	service := authenticating.NewService(&config.Config{
		Auth: config.Auth{
			Secret:               "segredo-de-teste",
			OperatorUser:         "admin",
			OperatorPasswordHash: string(hash),
		},
	})

	return router.New(router.WithRoutes(Authentication(service)...))
}

func TestLogin(t *testing.T) {
	handler := newAuthRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Credenciais corretas devolvem token",
			body:           `{"username":"admin","password":"senha-correta"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Senha incorreta responde 401",
			body:           `{"username":"admin","password":"senha-errada"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "AUTH_001",
		},
		{
			name:           "Credenciais ausentes respondem 400",
			body:           `{"username":"","password":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VAL_002",
		},
		{
			name:           "Corpo malformado responde 400",
			body:           `{username`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VAL_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp loginResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Token)
				return
			}

			assert.Contains(t, rec.Body.String(), tt.expectedCode)
		})
	}
}
