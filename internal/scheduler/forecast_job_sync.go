package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-forecast-api/infrastructure/integrator/forecastjob"
	"github.com/vfg2006/order-forecast-api/internal/config"
	"github.com/vfg2006/order-forecast-api/internal/domain"
)

// ForecastJobSyncConfig holds the scheduler settings for the external
// forecasting job kickoff.
type ForecastJobSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ForecastJobSyncService fires the external forecasting job on a cron
// schedule and exposes the same kickoff for manual triggering.
type ForecastJobSyncService struct {
	scheduler           *gocron.Scheduler
	config              ForecastJobSyncConfig
	trigger             forecastjob.Trigger
	syncRunning         bool
	syncMutex           sync.Mutex
	lastRunID           string
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewForecastJobSyncService(trigger forecastjob.Trigger, appConfig *config.Config) *ForecastJobSyncService {
	syncConfig := ForecastJobSyncConfig{
		CronSchedule: appConfig.ForecastJobSync.CronSchedule,
		SyncEnabled:  appConfig.ForecastJobSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("forecast job scheduler configuration loaded")

	return &ForecastJobSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		trigger:     trigger,
		syncRunning: false,
	}
}

// Start registers the cron job and runs the scheduler asynchronously.
// The scheduler stops when the context is cancelled.
func (s *ForecastJobSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("scheduled forecast job kickoff disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting forecast job scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runForecastJob()
	})
	if err != nil {
		return fmt.Errorf("scheduling forecast job kickoff: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping forecast job scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// runForecastJob fires one kickoff, skipping if a run is already in
// flight.
func (s *ForecastJobSyncService) runForecastJob() {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("forecast job kickoff already in progress, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("triggering scheduled forecast job run")

	result, err := s.trigger.RunForecast(context.Background(), domain.ForecastJobRequest{
		Timestamp: startTime,
	})
	if err != nil {
		s.syncMutex.Lock()
		s.lastSyncError = err.Error()
		s.syncMutex.Unlock()
		logrus.WithError(err).Error("scheduled forecast job run failed")
		return
	}

	// GetStatus is served concurrently; every status field write stays
	// behind the mutex.
	s.syncMutex.Lock()
	s.lastRunID = result.RunID
	s.lastSyncError = ""
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"duration": result.Duration,
		"message":  result.Message,
	}).Info("scheduled forecast job run completed")
}

// TriggerManualSync fires a kickoff outside the cron schedule.
func (s *ForecastJobSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("forecast job kickoff already in progress, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("starting manual forecast job kickoff")
	go s.runForecastJob()
}

// GetStatus reports the scheduler state for the status endpoint.
func (s *ForecastJobSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
