package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/order-forecast-api/pkg/log"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id"`
}

// CreateUser registers a new user and answers 201 with the created
// profile. Admin-gated via the route middleware.
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteDetail(w, apiErrors.ErrInvalidRequest, "invalid request body")
			return
		}

		if req.Name == "" || req.Email == "" || req.Password == "" {
			apiErrors.WriteDetail(w, apiErrors.ErrMissingRequiredData, "name, email and password are required")
			return
		}

		user, err := service.CreateUser(&domain.User{
			Name:         req.Name,
			Lastname:     req.Lastname,
			Email:        req.Email,
			PasswordHash: req.Password,
			RoleID:       req.RoleID,
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to create user")

			var authErr *authenticating.AuthError
			if errors.As(err, &authErr) {
				apiErrors.WriteDetail(w, authErr.Code, authErr.Error())
				return
			}

			apiErrors.WriteDetail(w, apiErrors.ErrDatabaseOperation, "failed to create user")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(user); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode created user")
		}
	}
}
