package forecasting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-forecast-api/infrastructure/repository/mocks"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC)
}

func newTestService(forecastRepo *mocks.MockForecastRepository, orderRepo *mocks.MockOrderRepository) *Service {
	return &Service{
		forecastRepo: forecastRepo,
		orderRepo:    orderRepo,
		now:          fixedNow,
	}
}

func orderRow(date string, quantity float64, price *float64, customerID *int64) *domain.OrderRow {
	parsed, _ := time.Parse(time.DateOnly, date)
	return &domain.OrderRow{
		OrderDate:    parsed,
		Quantity:     quantity,
		SellingPrice: price,
		CustomerID:   customerID,
	}
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }
func strPtr(v string) *string     { return &v }

func TestGetCustomerForecasts_GapFilledSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 7, PredictedDate: "2024-02-01", PredictedQuantity: 10},
	}, nil)

	// Revenue 100 on Jan 1 (50*2), 50 on Jan 3 (50*1); nothing on Jan 2.
	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{
		orderRow("2024-01-01", 2, floatPtr(50), int64Ptr(7)),
		orderRow("2024-01-03", 1, floatPtr(50), int64Ptr(7)),
	}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	expected := []domain.DailySales{
		{Date: "2024-01-01", Quantity: 100},
		{Date: "2024-01-02", Quantity: 0},
		{Date: "2024-01-03", Quantity: 50},
	}
	assert.Equal(t, expected, bundles[0].ActualSales)
}

func TestGetCustomerForecasts_SeriesLengthAndUniqueness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 3, PredictedDate: "2024-02-01", PredictedQuantity: 5},
	}, nil)

	// First sale Dec 20, 2023; today is Jan 3, 2024 → 15 entries.
	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{
		orderRow("2023-12-20", 1, floatPtr(10), int64Ptr(3)),
		orderRow("2023-12-28", 3, floatPtr(10), int64Ptr(3)),
	}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	series := bundles[0].ActualSales
	assert.Len(t, series, 15)

	seen := make(map[string]bool)
	for _, day := range series {
		assert.False(t, seen[day.Date], "duplicate date %s", day.Date)
		seen[day.Date] = true
	}
}

func TestGetCustomerForecasts_NoRevenueYieldsEmptySeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 9, PredictedDate: "2024-01-05", PredictedQuantity: 10},
		{CofID: 2, CustomerID: 9, PredictedDate: "2024-02-10", PredictedQuantity: 20},
	}, nil)
	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	assert.Len(t, bundles[0].Forecasts, 2)
	assert.Empty(t, bundles[0].ActualSales)
}

func TestGetCustomerForecasts_RevenueRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 4, PredictedDate: "2024-02-01", PredictedQuantity: 5},
	}, nil)

	orders := []*domain.OrderRow{
		orderRow("2024-01-01", 2, floatPtr(30), int64Ptr(4)),
		orderRow("2024-01-01", 1, floatPtr(15.5), int64Ptr(4)),
		orderRow("2024-01-02", 4, nil, int64Ptr(4)), // missing price counts as zero
		orderRow("2024-01-03", 3, floatPtr(20), int64Ptr(4)),
	}
	orderRepo.EXPECT().ListOrderRows().Return(orders, nil)

	var expectedTotal float64
	for _, order := range orders {
		expectedTotal += order.Revenue()
	}

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	assert.InDelta(t, expectedTotal, bundles[0].TotalSales(), 1e-9)
}

func TestGetCustomerForecasts_SkipsOrdersWithoutCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 4, PredictedDate: "2024-02-01", PredictedQuantity: 5},
	}, nil)

	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{
		orderRow("2024-01-01", 2, floatPtr(30), int64Ptr(4)),
		orderRow("2024-01-02", 9, floatPtr(99), nil), // orphan contact, ignored
	}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	assert.InDelta(t, 60.0, bundles[0].TotalSales(), 1e-9)
}

func TestGetCustomerForecasts_Ranking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	// Seven customers: IDs 1..7 with strictly distinct totals 70..10, so
	// IDs 1-5 are the top five and 6-7 trail alphabetically.
	forecasts := []*domain.ForecastRecord{
		{CofID: 1, CustomerID: 1, CompanyName: strPtr("Zeta"), PredictedDate: "2024-02-01"},
		{CofID: 2, CustomerID: 2, CompanyName: strPtr("Yankee"), PredictedDate: "2024-02-01"},
		{CofID: 3, CustomerID: 3, CompanyName: strPtr("Xray"), PredictedDate: "2024-02-01"},
		{CofID: 4, CustomerID: 4, CompanyName: strPtr("Whiskey"), PredictedDate: "2024-02-01"},
		{CofID: 5, CustomerID: 5, CompanyName: strPtr("Victor"), PredictedDate: "2024-02-01"},
		{CofID: 6, CustomerID: 6, CompanyName: strPtr("beta co"), PredictedDate: "2024-02-01"},
		{CofID: 7, CustomerID: 7, CompanyName: strPtr("Alpha co"), PredictedDate: "2024-02-01"},
	}
	forecastRepo.EXPECT().ListForecasts().Return(forecasts, nil)

	orders := make([]*domain.OrderRow, 0, 7)
	for id := int64(1); id <= 7; id++ {
		total := float64(8-id) * 10 // 70, 60, ..., 10
		orders = append(orders, orderRow("2024-01-02", total, floatPtr(1), int64Ptr(id)))
	}
	orderRepo.EXPECT().ListOrderRows().Return(orders, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 7)

	// Top five by total sales descending.
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(i+1), bundles[i].CustomerID)
	}
	// Remainder in case-insensitive name order.
	assert.Equal(t, int64(7), bundles[5].CustomerID) // Alpha co
	assert.Equal(t, int64(6), bundles[6].CustomerID) // beta co
}

func TestGetCustomerForecasts_TopFiveTieBreaksByCustomerID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 12, PredictedDate: "2024-02-01"},
		{CofID: 2, CustomerID: 5, PredictedDate: "2024-02-01"},
	}, nil)

	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{
		orderRow("2024-01-02", 10, floatPtr(1), int64Ptr(12)),
		orderRow("2024-01-02", 10, floatPtr(1), int64Ptr(5)),
	}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	assert.Equal(t, int64(5), bundles[0].CustomerID)
	assert.Equal(t, int64(12), bundles[1].CustomerID)
}

func TestGetCustomerForecasts_Idempotence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecasts := []*domain.ForecastRecord{
		{CofID: 1, CustomerID: 2, CompanyName: strPtr("Acme"), PredictedDate: "2024-02-01", PredictedQuantity: 5},
		{CofID: 2, CustomerID: 8, PredictedDate: "2024-02-15", PredictedQuantity: 7},
	}
	orders := []*domain.OrderRow{
		orderRow("2024-01-01", 2, floatPtr(30), int64Ptr(2)),
		orderRow("2024-01-02", 1, floatPtr(40), int64Ptr(8)),
	}

	forecastRepo.EXPECT().ListForecasts().Return(forecasts, nil).Times(2)
	orderRepo.EXPECT().ListOrderRows().Return(orders, nil).Times(2)

	first, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	second, err := service.GetCustomerForecasts()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetCustomerForecasts_DataSourceErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	dbErr := errors.New("connection reset")
	forecastRepo.EXPECT().ListForecasts().Return(nil, dbErr)

	_, err := service.GetCustomerForecasts()
	require.Error(t, err)

	var sourceErr *DataSourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "customer_order_forecast", sourceErr.Source)
	assert.ErrorIs(t, err, dbErr)
}

func TestGetCustomerForecasts_DisplayNameFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	// Neither customer has sales; both rank outside the top five by name,
	// and the nameless one sorts under "Customer 42".
	forecastRepo.EXPECT().ListForecasts().Return([]*domain.ForecastRecord{
		{CofID: 1, CustomerID: 42, PredictedDate: "2024-02-01"},
		{CofID: 2, CustomerID: 2, CompanyName: strPtr("Acme"), PredictedDate: "2024-02-01"},
	}, nil)
	orderRepo.EXPECT().ListOrderRows().Return([]*domain.OrderRow{}, nil)

	bundles, err := service.GetCustomerForecasts()
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	assert.Equal(t, "Customer 42", bundles[0].Profile().DisplayName())
	assert.Equal(t, "Acme", bundles[1].Profile().DisplayName())
}

func TestUpdateForecast(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.UpdateForecastRequest
		setup   func(repo *mocks.MockForecastRepository)
		wantErr func(t *testing.T, err error)
	}{
		{
			name: "updates existing record",
			req: &domain.UpdateForecastRequest{
				CofID:             1,
				PredictedQuantity: floatPtr(12),
			},
			setup: func(repo *mocks.MockForecastRepository) {
				repo.EXPECT().UpdateForecast(gomock.Any()).Return(true, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "missing record",
			req: &domain.UpdateForecastRequest{
				CofID:             99,
				PredictedQuantity: floatPtr(12),
			},
			setup: func(repo *mocks.MockForecastRepository) {
				repo.EXPECT().UpdateForecast(gomock.Any()).Return(false, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrForecastNotFound)
			},
		},
		{
			name: "empty payload rejected",
			req:  &domain.UpdateForecastRequest{CofID: 1},
			setup: func(repo *mocks.MockForecastRepository) {
				// repository never reached
			},
			wantErr: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
			},
		},
		{
			name: "malformed date rejected",
			req: &domain.UpdateForecastRequest{
				CofID:         1,
				PredictedDate: strPtr("05/01/2024"),
			},
			setup: func(repo *mocks.MockForecastRepository) {},
			wantErr: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "predictedDate", validationErr.Field)
			},
		},
		{
			name: "probability out of range rejected",
			req: &domain.UpdateForecastRequest{
				CofID:       1,
				Probability: floatPtr(1.5),
			},
			setup: func(repo *mocks.MockForecastRepository) {},
			wantErr: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "probability", validationErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			forecastRepo := mocks.NewMockForecastRepository(ctrl)
			orderRepo := mocks.NewMockOrderRepository(ctrl)
			service := newTestService(forecastRepo, orderRepo)

			tt.setup(forecastRepo)
			tt.wantErr(t, service.UpdateForecast(tt.req))
		})
	}
}

func TestDeleteForecast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newTestService(forecastRepo, orderRepo)

	forecastRepo.EXPECT().DeleteForecast(int64(1)).Return(true, nil)
	assert.NoError(t, service.DeleteForecast(1))

	forecastRepo.EXPECT().DeleteForecast(int64(99)).Return(false, nil)
	assert.ErrorIs(t, service.DeleteForecast(99), ErrForecastNotFound)
}
