package forecasting

import (
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/order-forecast-api/infrastructure/repository"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/pkg/log"
)

const topCustomerCount = 5

type Service struct {
	forecastRepo repository.ForecastRepository
	orderRepo    repository.OrderRepository

	// now bounds the gap fill; injectable so the series properties are
	// testable against a fixed date.
	now func() time.Time
}

func NewService(
	forecastRepo repository.ForecastRepository,
	orderRepo repository.OrderRepository,
) Bundler {
	return &Service{
		forecastRepo: forecastRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

func (s *Service) GetCustomerForecasts() ([]*domain.CustomerForecastBundle, error) {
	forecasts, err := s.forecastRepo.ListForecasts()
	if err != nil {
		return nil, &DataSourceError{Source: "customer_order_forecast", Err: err}
	}

	orders, err := s.orderRepo.ListOrderRows()
	if err != nil {
		return nil, &DataSourceError{Source: "orders", Err: err}
	}

	return s.buildBundles(forecasts, orders), nil
}

// buildBundles runs the aggregation pipeline over already-fetched rows:
// revenue derivation, per-customer gap fill, grouping, ranking.
func (s *Service) buildBundles(
	forecasts []*domain.ForecastRecord,
	orders []*domain.OrderRow,
) []*domain.CustomerForecastBundle {
	revenueByCustomer := sumDailyRevenue(orders)

	// Group forecast rows by customer, keeping encounter order and the
	// profile snapshot of the first row seen for each customer.
	bundles := make([]*domain.CustomerForecastBundle, 0)
	byCustomer := make(map[int64]*domain.CustomerForecastBundle)

	for _, forecast := range forecasts {
		bundle, ok := byCustomer[forecast.CustomerID]
		if !ok {
			bundle = &domain.CustomerForecastBundle{
				CustomerID:   forecast.CustomerID,
				CompanyName:  forecast.CompanyName,
				CustomerName: forecast.CustomerName,
				CompanySize:  forecast.CompanySize,
				Forecasts:    make([]*domain.ForecastRecord, 0, 1),
				ActualSales:  make([]domain.DailySales, 0),
			}
			byCustomer[forecast.CustomerID] = bundle
			bundles = append(bundles, bundle)
		}
		bundle.Forecasts = append(bundle.Forecasts, forecast)
	}

	today := s.now()
	for _, bundle := range bundles {
		bundle.ActualSales = fillDailySeries(revenueByCustomer[bundle.CustomerID], today)
	}

	rankBundles(bundles)

	return bundles
}

// sumDailyRevenue accumulates per-order revenue into
// customerId → (calendar date → summed revenue). Orders whose contact has
// no customer attached are dropped with a diagnostic log; they never fail
// the request.
func sumDailyRevenue(orders []*domain.OrderRow) map[int64]map[string]float64 {
	revenue := make(map[int64]map[string]float64)

	skipped := 0
	for _, order := range orders {
		if order.CustomerID == nil {
			skipped++
			continue
		}

		day := order.OrderDate.Format(time.DateOnly)

		daily, ok := revenue[*order.CustomerID]
		if !ok {
			daily = make(map[string]float64)
			revenue[*order.CustomerID] = daily
		}
		daily[day] += order.Revenue()
	}

	if skipped > 0 {
		log.L.WithFields(log.Fields{
			"skipped_orders": skipped,
		}).Warn("forecasting: orders without customer linkage ignored")
	}

	return revenue
}

// fillDailySeries expands the sparse revenue map into one entry per
// calendar day from the customer's first sale through today, inclusive,
// zero-filling days without revenue. Customers without any revenue get an
// empty series: there is no first sale date to anchor the fill.
func fillDailySeries(daily map[string]float64, today time.Time) []domain.DailySales {
	series := make([]domain.DailySales, 0)
	if len(daily) == 0 {
		return series
	}

	first := ""
	for day := range daily {
		if first == "" || day < first {
			first = day
		}
	}

	start, err := time.ParseInLocation(time.DateOnly, first, today.Location())
	if err != nil {
		log.L.WithFields(log.Fields{
			"date": first,
		}).Error("forecasting: unparsable first sale date, skipping series")
		return series
	}

	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(time.DateOnly)
		series = append(series, domain.DailySales{
			Date:     key,
			Quantity: daily[key],
		})
	}

	return series
}

// rankBundles orders the final response: the top customers by total sales
// first, descending, then everyone else by display name, case-insensitive
// ascending. Ties on total sales break by customer ID ascending so the
// output is deterministic.
func rankBundles(bundles []*domain.CustomerForecastBundle) {
	totals := make(map[int64]float64, len(bundles))
	for _, bundle := range bundles {
		totals[bundle.CustomerID] = bundle.TotalSales()
	}

	ranked := make([]*domain.CustomerForecastBundle, len(bundles))
	copy(ranked, bundles)
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i].CustomerID] != totals[ranked[j].CustomerID] {
			return totals[ranked[i].CustomerID] > totals[ranked[j].CustomerID]
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})

	top := make(map[int64]bool, topCustomerCount)
	for i := 0; i < len(ranked) && i < topCustomerCount; i++ {
		top[ranked[i].CustomerID] = true
	}

	sort.SliceStable(bundles, func(i, j int) bool {
		iTop, jTop := top[bundles[i].CustomerID], top[bundles[j].CustomerID]

		if iTop && jTop {
			if totals[bundles[i].CustomerID] != totals[bundles[j].CustomerID] {
				return totals[bundles[i].CustomerID] > totals[bundles[j].CustomerID]
			}
			return bundles[i].CustomerID < bundles[j].CustomerID
		}
		if iTop != jTop {
			return iTop
		}

		iName := strings.ToLower(bundles[i].Profile().DisplayName())
		jName := strings.ToLower(bundles[j].Profile().DisplayName())
		return iName < jName
	})
}

func (s *Service) UpdateForecast(req *domain.UpdateForecastRequest) error {
	if err := validateUpdate(req); err != nil {
		return err
	}

	found, err := s.forecastRepo.UpdateForecast(req)
	if err != nil {
		return err
	}
	if !found {
		return ErrForecastNotFound
	}

	log.L.WithFields(log.Fields{
		"cof_id": req.CofID,
	}).Info("forecasting: forecast record updated")

	return nil
}

func (s *Service) DeleteForecast(cofID int64) error {
	found, err := s.forecastRepo.DeleteForecast(cofID)
	if err != nil {
		return err
	}
	if !found {
		return ErrForecastNotFound
	}

	log.L.WithFields(log.Fields{
		"cof_id": cofID,
	}).Info("forecasting: forecast record deleted")

	return nil
}

func validateUpdate(req *domain.UpdateForecastRequest) error {
	if req.PredictedDate == nil && req.PredictedQuantity == nil &&
		req.MAPE == nil && req.Probability == nil && req.PredictionModel == nil {
		return newValidationError("payload", "no fields to update")
	}

	if req.PredictedDate != nil {
		if _, err := time.Parse(time.DateOnly, *req.PredictedDate); err != nil {
			return newValidationError("predictedDate", "must be a YYYY-MM-DD date")
		}
	}
	if req.PredictedQuantity != nil && *req.PredictedQuantity < 0 {
		return newValidationError("predictedQuantity", "must be non-negative")
	}
	if req.MAPE != nil && *req.MAPE < 0 {
		return newValidationError("mape", "must be non-negative")
	}
	if req.Probability != nil && (*req.Probability < 0 || *req.Probability > 1) {
		return newValidationError("probability", "must be within [0,1]")
	}
	if req.PredictionModel != nil && *req.PredictionModel == "" {
		return newValidationError("predictionModel", "must not be empty")
	}

	return nil
}
