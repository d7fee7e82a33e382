package reporting

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/order-forecast-api/pkg/utils"
)

// Reporter produces the chart-facing summary over a bundle set.
type Reporter interface {
	GetForecastSummary(filters *domain.SummaryFilters) (*domain.ForecastSummary, error)
}

type Service struct {
	bundler forecasting.Bundler
}

func NewService(bundler forecasting.Bundler) Reporter {
	return &Service{
		bundler: bundler,
	}
}

func (s *Service) GetForecastSummary(filters *domain.SummaryFilters) (*domain.ForecastSummary, error) {
	bundles, err := s.bundler.GetCustomerForecasts()
	if err != nil {
		return nil, err
	}

	return Summarize(bundles, filters), nil
}

// Summarize re-aggregates the bundle list for display: a combined monthly
// series over the selected customer set, the mean-of-means MAPE figure,
// period averages, and the linear-trend percentage.
func Summarize(bundles []*domain.CustomerForecastBundle, filters *domain.SummaryFilters) *domain.ForecastSummary {
	selected := selectBundles(bundles, filters)

	series := monthlySeries(selected, filters)

	return &domain.ForecastSummary{
		Series:       series,
		MAPE:         meanOfMeanMAPE(selected),
		AvgPredicted: periodAverage(series, func(p domain.MonthlyPoint) float64 { return p.PredictedQuantity }),
		AvgActual:    periodAverage(series, func(p domain.MonthlyPoint) float64 { return p.ActualSales }),
		Trend:        forecastTrend(series),
	}
}

func selectBundles(bundles []*domain.CustomerForecastBundle, filters *domain.SummaryFilters) []*domain.CustomerForecastBundle {
	if filters == nil {
		return bundles
	}

	switch filters.View {
	case domain.SummaryViewSize:
		if filters.CompanySize == nil {
			return bundles
		}
		selected := make([]*domain.CustomerForecastBundle, 0, len(bundles))
		for _, bundle := range bundles {
			if bundle.CompanySize != nil && *bundle.CompanySize == *filters.CompanySize {
				selected = append(selected, bundle)
			}
		}
		return selected

	case domain.SummaryViewCustomer:
		if filters.CustomerID == nil {
			return bundles
		}
		for _, bundle := range bundles {
			if bundle.CustomerID == *filters.CustomerID {
				return []*domain.CustomerForecastBundle{bundle}
			}
		}
		return nil

	default:
		return bundles
	}
}

// monthlySeries buckets forecast quantities and daily actuals into
// first-of-month keys, summed across the selected customers, ascending.
func monthlySeries(bundles []*domain.CustomerForecastBundle, filters *domain.SummaryFilters) []domain.MonthlyPoint {
	forecastByMonth := make(map[string]float64)
	actualByMonth := make(map[string]float64)

	for _, bundle := range bundles {
		for _, forecast := range bundle.Forecasts {
			forecastByMonth[monthKey(forecast.PredictedDate)] += forecast.PredictedQuantity
		}
		for _, day := range bundle.ActualSales {
			actualByMonth[monthKey(day.Date)] += day.Quantity
		}
	}

	months := make(map[string]bool)
	for month := range forecastByMonth {
		months[month] = true
	}
	for month := range actualByMonth {
		months[month] = true
	}

	// A fixed date range pre-seeds every month inside it, so the chart
	// draws zero months instead of gaps.
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		for month := firstOfMonth(*filters.StartDate); !month.After(*filters.EndDate); month = month.AddDate(0, 1, 0) {
			months[month.Format(time.DateOnly)] = true
		}
	}

	keys := make([]string, 0, len(months))
	for month := range months {
		if !monthInRange(month, filters) {
			continue
		}
		keys = append(keys, month)
	}
	sort.Strings(keys)

	series := make([]domain.MonthlyPoint, 0, len(keys))
	for _, month := range keys {
		series = append(series, domain.MonthlyPoint{
			Date:              month,
			PredictedQuantity: forecastByMonth[month],
			ActualSales:       actualByMonth[month],
		})
	}

	return series
}

// monthKey maps a YYYY-MM-DD date string to its first-of-month key.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7] + "-01"
}

func firstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

func monthInRange(month string, filters *domain.SummaryFilters) bool {
	if filters == nil {
		return true
	}

	parsed, err := time.Parse(time.DateOnly, month)
	if err != nil {
		return false
	}

	if filters.StartDate != nil && parsed.Before(firstOfMonth(*filters.StartDate)) {
		return false
	}
	if filters.EndDate != nil && parsed.After(*filters.EndDate) {
		return false
	}

	return true
}

// meanOfMeanMAPE averages each customer's own mean mape, then averages
// those means. Deliberately not quantity-weighted: the dashboard figure
// is defined over customers, not quantities.
func meanOfMeanMAPE(bundles []*domain.CustomerForecastBundle) float64 {
	var total float64
	counted := 0

	for _, bundle := range bundles {
		var sum float64
		valid := 0
		for _, forecast := range bundle.Forecasts {
			if forecast.MAPE == nil {
				continue
			}
			sum += *forecast.MAPE
			valid++
		}
		if valid == 0 {
			continue
		}
		total += sum / float64(valid)
		counted++
	}

	if counted == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(total / float64(counted))
}

// periodAverage is the floored mean over months where the selected value
// is positive.
func periodAverage(series []domain.MonthlyPoint, value func(domain.MonthlyPoint) float64) float64 {
	var sum float64
	counted := 0

	for _, point := range series {
		v := value(point)
		if v <= 0 {
			continue
		}
		sum += v
		counted++
	}

	if counted == 0 {
		return 0
	}

	return math.Floor(sum / float64(counted))
}

// forecastTrend fits an ordinary least-squares line to the forecast
// quantities over a 0-based month index and reports the slope as a
// percentage of the mean. Fewer than 2 points, or a zero mean, yields 0.
func forecastTrend(series []domain.MonthlyPoint) float64 {
	points := make([]float64, 0, len(series))
	for _, point := range series {
		if point.PredictedQuantity > 0 {
			points = append(points, point.PredictedQuantity)
		}
	}

	n := float64(len(points))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	mean := sumY / n
	if mean == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)

	return utils.RoundWithTwoDecimalPlace(slope / mean * 100)
}
