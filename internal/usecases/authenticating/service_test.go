package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-performance-api/internal/config"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig(t *testing.T, password string) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		Auth: config.Auth{
			Secret:               "segredo-de-teste",
			OperatorUser:         "admin",
			OperatorPasswordHash: string(hash),
		},
	}
}

func TestService_Login(t *testing.T) {
	service := NewService(newTestConfig(t, "senha-correta"))

	tests := []struct {
		name         string
		username     string
		password     string
		expectedCode string
	}{
		{
			name:     "Credenciais corretas emitem token",
			username: "admin",
			password: "senha-correta",
		},
		{
			name:     "Usuário comparado sem diferenciar maiúsculas",
			username: "ADMIN",
			password: "senha-correta",
		},
		{
			name:         "Usuário vazio",
			username:     "",
			password:     "senha-correta",
			expectedCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:         "Senha vazia",
			username:     "admin",
			password:     "",
			expectedCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:         "Usuário desconhecido",
			username:     "intruso",
			password:     "senha-correta",
			expectedCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:         "Senha incorreta",
			username:     "admin",
			password:     "senha-errada",
			expectedCode: apiErrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.Login(tt.username, tt.password)

			if tt.expectedCode == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				return
			}

			require.Error(t, err)
			assert.Empty(t, token)

			authErr, ok := err.(*AuthError)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, authErr.Code)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	cfg := newTestConfig(t, "senha-correta")
	service := NewService(cfg)

	t.Run("Token emitido pelo Login é válido", func(t *testing.T) {
		token, err := service.Login("admin", "senha-correta")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		token, err := service.Login("admin", "senha-correta")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token + "x")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token assinado com outro segredo é rejeitado", func(t *testing.T) {
		otherCfg := newTestConfig(t, "senha-correta")
		otherCfg.Auth.Secret = "outro-segredo"
		token, err := NewService(otherCfg).Login("admin", "senha-correta")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
