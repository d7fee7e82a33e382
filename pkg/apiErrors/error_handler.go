package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes surfaced to API clients.
const (
	// Authentication errors
	ErrInvalidCredentials    = "AUTH_001"
	ErrUserDisabled          = "AUTH_002"
	ErrUserNotFound          = "AUTH_003"
	ErrInvalidToken          = "AUTH_004"
	ErrInsufficientPrivilege = "AUTH_005"
	ErrUserAlreadyExists     = "AUTH_006"

	// Validation errors
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	// Resource errors
	ErrNotFound = "RES_001"

	// Server errors
	ErrInternalServer    = "SRV_001"
	ErrDataSource        = "SRV_002"
	ErrDatabaseOperation = "SRV_003"
	ErrExternalService   = "SRV_004"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusConflict,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDataSource:            http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError is the JSON error body. The read endpoint reports both a
// short error label and a detail; mutation endpoints report detail only.
type APIError struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail"`
}

// WriteError writes the `{error, detail}` body used by the read
// endpoints, with the HTTP status mapped from the code.
func WriteError(w http.ResponseWriter, code string, errorLabel string, detail string) {
	write(w, code, APIError{Error: errorLabel, Detail: detail})
}

// WriteDetail writes the `{detail}` body used by the mutation endpoints.
func WriteDetail(w http.ResponseWriter, code string, detail string) {
	write(w, code, APIError{Detail: detail})
}

func write(w http.ResponseWriter, code string, apiErr APIError) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
