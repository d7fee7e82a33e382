package domain

import "time"

// ForecastJobRequest is the fire-and-forget kickoff payload for the
// external forecasting job. The timestamp marks when the caller asked for
// a new forecast; the job's own logic lives outside this service.
type ForecastJobRequest struct {
	Timestamp time.Time `json:"timestamp"`
}

// ForecastJobResult is what the forecasting job reports back for a
// kickoff. RunID is assigned on our side so a run can be traced in logs.
type ForecastJobResult struct {
	RunID    string `json:"runId"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Duration string `json:"duration,omitempty"`
}
