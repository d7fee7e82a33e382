package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vfg2006/order-forecast-api/internal/domain"
	"github.com/vfg2006/order-forecast-api/internal/usecases/reporting"
	"github.com/vfg2006/order-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/order-forecast-api/pkg/log"
	"github.com/vfg2006/order-forecast-api/pkg/utils"
)

// GetForecastSummary serves the display aggregation for the chart
// header. Query parameters: view (all|size|customer), company_size,
// customer_id, start_date and end_date (YYYY-MM-DD).
func GetForecastSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := summaryFiltersFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid filters", err.Error())
			return
		}

		summary, err := service.GetForecastSummary(filters)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to build forecast summary")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal error", "failed to build forecast summary")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to encode forecast summary")
		}
	}
}

func summaryFiltersFromQuery(r *http.Request) (*domain.SummaryFilters, error) {
	query := r.URL.Query()

	filters := &domain.SummaryFilters{
		View: domain.SummaryViewAll,
	}

	switch view := query.Get("view"); view {
	case "", string(domain.SummaryViewAll):
		filters.View = domain.SummaryViewAll
	case string(domain.SummaryViewSize):
		filters.View = domain.SummaryViewSize
	case string(domain.SummaryViewCustomer):
		filters.View = domain.SummaryViewCustomer
	default:
		return nil, &forecastingFilterError{param: "view", value: view}
	}

	if size := query.Get("company_size"); size != "" {
		companySize := domain.CompanySize(size)
		if !companySize.Valid() {
			return nil, &forecastingFilterError{param: "company_size", value: size}
		}
		filters.CompanySize = &companySize
	}

	if idStr := query.Get("customer_id"); idStr != "" {
		customerID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, &forecastingFilterError{param: "customer_id", value: idStr}
		}
		filters.CustomerID = &customerID
	}

	if startStr := query.Get("start_date"); startStr != "" {
		startDate, err := utils.ParseDate(startStr)
		if err != nil {
			return nil, &forecastingFilterError{param: "start_date", value: startStr}
		}
		filters.StartDate = startDate
	}

	if endStr := query.Get("end_date"); endStr != "" {
		endDate, err := utils.ParseDate(endStr)
		if err != nil {
			return nil, &forecastingFilterError{param: "end_date", value: endStr}
		}
		filters.EndDate = endDate
	}

	return filters, nil
}

type forecastingFilterError struct {
	param string
	value string
}

func (e *forecastingFilterError) Error() string {
	return "unsupported value for " + e.param + ": " + e.value
}
