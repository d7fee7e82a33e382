package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/order-forecast-api/infrastructure/integrator/forecastjob"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/scheduler"
	"github.com/vfg2006/order-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/order-forecast-api/pkg/log"
)

// ForecastJobServices carries the collaborators behind the forecast job
// endpoints: the direct trigger and the cron scheduler around it.
type ForecastJobServices struct {
	Trigger     forecastjob.Trigger
	SyncService *scheduler.ForecastJobSyncService
}

type runForecastRequest struct {
	Timestamp *time.Time `json:"timestamp"`
}

// RunForecastJob fires the external forecasting job synchronously and
// relays its result. An absent timestamp defaults to now.
func RunForecastJob(services ForecastJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.Trigger == nil {
			apiErrors.WriteDetail(w, apiErrors.ErrInternalServer, "forecast job trigger not available")
			return
		}

		var req runForecastRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteDetail(w, apiErrors.ErrInvalidRequest, "invalid request body")
				return
			}
		}

		timestamp := time.Now()
		if req.Timestamp != nil {
			timestamp = *req.Timestamp
		}

		result, err := services.Trigger.RunForecast(r.Context(), domain.ForecastJobRequest{
			Timestamp: timestamp,
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("forecast job trigger failed")
			apiErrors.WriteDetail(w, apiErrors.ErrExternalService, "forecast job failed to run")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode forecast job result")
		}
	}
}

// GetForecastJobStatus reports the scheduler state.
func GetForecastJobStatus(services ForecastJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.SyncService == nil {
			apiErrors.WriteDetail(w, apiErrors.ErrInternalServer, "forecast job scheduler not available")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(services.SyncService.GetStatus()); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode forecast job status")
		}
	}
}
