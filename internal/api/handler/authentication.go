package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/order-forecast-api/pkg/log"
	"github.com/vfg2006/order-forecast-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteDetail(w, apiErrors.ErrInvalidRequest, "invalid request body")
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

// GetMe returns the profile of the authenticated user.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteDetail(w, apiErrors.ErrInvalidToken, "user not authenticated")
			return
		}

		user, err := service.GetUserProfile(userClaims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to load user profile")
			apiErrors.WriteDetail(w, apiErrors.ErrInternalServer, "failed to load user profile")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(user); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode user profile")
		}
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteDetail(w, authErr.Code, authErr.Error())
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteDetail(w, apiErrors.ErrInvalidCredentials, "invalid credentials")

	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteDetail(w, apiErrors.ErrUserDisabled, "account disabled")

	case errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteDetail(w, apiErrors.ErrUserNotFound, "user not found")

	default:
		apiErrors.WriteDetail(w, apiErrors.ErrInternalServer, "login failed")
	}
}
