package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-forecast-api/infrastructure/integrator/forecastjob/mocks"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(trigger *mocks.MockTrigger) *ForecastJobSyncService {
	return &ForecastJobSyncService{
		config: ForecastJobSyncConfig{
			CronSchedule: "0 2 * * *",
			SyncEnabled:  true,
		},
		trigger: trigger,
	}
}

func TestRunForecastJob_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := mocks.NewMockTrigger(ctrl)
	service := newTestSyncService(trigger)

	trigger.EXPECT().
		RunForecast(gomock.Any(), gomock.Any()).
		Return(&domain.ForecastJobResult{
			RunID:    "a1B2c3",
			Success:  true,
			Duration: "1.2s",
		}, nil)

	service.runForecastJob()

	status := service.GetStatus()
	assert.Equal(t, "a1B2c3", status["last_run_id"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.False(t, status["sync_running"].(bool))

	completedAt, ok := status["last_sync_completed_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, completedAt.IsZero())
}

func TestRunForecastJob_FailureKeepsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := mocks.NewMockTrigger(ctrl)
	service := newTestSyncService(trigger)

	trigger.EXPECT().
		RunForecast(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("job unreachable"))

	service.runForecastJob()

	status := service.GetStatus()
	assert.Equal(t, "job unreachable", status["last_sync_error"])
	assert.Equal(t, "", status["last_run_id"])

	completedAt, ok := status["last_sync_completed_at"].(time.Time)
	require.True(t, ok)
	assert.True(t, completedAt.IsZero())
}

func TestGetStatus_ConcurrentWithRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := mocks.NewMockTrigger(ctrl)
	service := newTestSyncService(trigger)

	trigger.EXPECT().
		RunForecast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req domain.ForecastJobRequest) (*domain.ForecastJobResult, error) {
			time.Sleep(5 * time.Millisecond)
			return &domain.ForecastJobResult{RunID: "a1B2c3", Success: true}, nil
		}).
		Times(3)

	// Status reads race the run's state transitions; the -race detector
	// flags any unguarded field write.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 3; i++ {
			service.runForecastJob()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			status := service.GetStatus()
			_, ok := status["last_run_id"].(string)
			assert.True(t, ok)
		}
	}()

	wg.Wait()

	status := service.GetStatus()
	assert.Equal(t, "a1B2c3", status["last_run_id"])
}

func TestRunForecastJob_SkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trigger := mocks.NewMockTrigger(ctrl)
	service := newTestSyncService(trigger)

	// No RunForecast expectation: a second entry while running must bail
	// out before touching the trigger.
	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	service.runForecastJob()
}
