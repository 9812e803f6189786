package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/ad-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ad-performance-api/pkg/log"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login autentica o operador do dashboard e devolve o token de acesso
func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("auth: invalid login payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Username, req.Password)
		if err != nil {
			var authErr *authenticating.AuthError
			if errors.As(err, &authErr) {
				logger.WithField("username", req.Username).Warn("auth: login rejected")
				apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
				return
			}

			logger.WithError(err).Error("auth: unexpected login failure")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
			return
		}

		logger.WithField("username", req.Username).Info("auth: operator logged in")
		respondJSON(w, r, http.StatusOK, loginResponse{Token: token})
	})
}
