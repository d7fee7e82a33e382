package forecastjob

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-forecast-api/internal/config"
	"github.com/vfg2006/order-forecast-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	runIDLength     = 6
	runIDCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Trigger kicks the external forecasting job. The job's model logic is
// entirely outside this repository; we only fire it and relay the result.
type Trigger interface {
	RunForecast(ctx context.Context, req domain.ForecastJobRequest) (*domain.ForecastJobResult, error)
}

type Client struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Trigger {
	timeout := time.Duration(cfg.ForecastJob.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

func (c *Client) RunForecast(ctx context.Context, jobReq domain.ForecastJobRequest) (*domain.ForecastJobResult, error) {
	runID, err := gonanoid.Generate(runIDCharacters, runIDLength)
	if err != nil {
		return nil, fmt.Errorf("generating run id: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"timestamp": jobReq.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding forecast job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ForecastJob.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating forecast job request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.ForecastJob.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.ForecastJob.AccessToken)
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    runID,
		"timestamp": jobReq.Timestamp.Format(time.RFC3339),
	}).Info("forecastjob: triggering external forecasting job")

	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing forecast job request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("forecast job request failed with status: %s", resp.Status)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A job that answers 2xx with an unparsable body still ran.
		logrus.WithError(err).Warn("forecastjob: could not decode job response body")
	}

	return &domain.ForecastJobResult{
		RunID:    runID,
		Success:  true,
		Message:  payload.Message,
		Duration: time.Since(started).Round(time.Millisecond).String(),
	}, nil
}
