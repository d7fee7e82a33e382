package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/order-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/order-forecast-api/pkg/log"
)

// ListCustomerForecasts serves the full ranked bundle list. The payload
// is recomputed from the source tables on every request.
func ListCustomerForecasts(service forecasting.Bundler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundles, err := service.GetCustomerForecasts()
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to build customer forecasts")

			var sourceErr *forecasting.DataSourceError
			if errors.As(err, &sourceErr) {
				apiErrors.WriteError(w, apiErrors.ErrDataSource, "data source unavailable", sourceErr.Error())
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal error", "failed to build customer forecasts")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(bundles); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode customer forecasts")
		}
	}
}

// UpdateForecast applies a partial edit to a single forecast record and
// answers 204 on success.
func UpdateForecast(service forecasting.Bundler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cofID, ok := forecastIDFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.UpdateForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteDetail(w, apiErrors.ErrInvalidRequest, "invalid request body")
			return
		}
		req.CofID = cofID

		if err := service.UpdateForecast(&req); err != nil {
			handleMutationError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteForecast removes a single forecast record and answers 204 on
// success.
func DeleteForecast(service forecasting.Bundler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cofID, ok := forecastIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := service.DeleteForecast(cofID); err != nil {
			handleMutationError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func forecastIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteDetail(w, apiErrors.ErrMissingRequiredData, "forecast id is required")
		return 0, false
	}

	cofID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		apiErrors.WriteDetail(w, apiErrors.ErrInvalidFormat, "forecast id must be an integer")
		return 0, false
	}

	return cofID, true
}

func handleMutationError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Error("forecast mutation failed")

	var validationErr *forecasting.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteDetail(w, apiErrors.ErrInvalidRequest, validationErr.Error())
		return
	}

	if errors.Is(err, forecasting.ErrForecastNotFound) {
		apiErrors.WriteDetail(w, apiErrors.ErrNotFound, "forecast record not found")
		return
	}

	apiErrors.WriteDetail(w, apiErrors.ErrDatabaseOperation, "failed to apply forecast change")
}
