package forecasting

import (
	"github.com/vfg2006/order-forecast-api/internal/domain"
)

// Bundler builds and edits the per-customer forecast bundles served to
// the dashboard.
type Bundler interface {
	// GetCustomerForecasts recomputes every bundle from the source tables:
	// revenue derivation, per-customer gap fill, grouping and ranking.
	GetCustomerForecasts() ([]*domain.CustomerForecastBundle, error)

	// UpdateForecast applies a partial edit to one forecast record.
	UpdateForecast(req *domain.UpdateForecastRequest) error

	// DeleteForecast removes one forecast record.
	DeleteForecast(cofID int64) error
}
