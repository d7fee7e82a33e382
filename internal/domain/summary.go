package domain

import "time"

// SummaryView selects which customer set a summary aggregates over.
type SummaryView string

const (
	SummaryViewAll      SummaryView = "all"
	SummaryViewSize     SummaryView = "size"
	SummaryViewCustomer SummaryView = "customer"
)

// SummaryFilters narrows the display aggregation: a view selection plus
// an optional month range applied to the combined series.
type SummaryFilters struct {
	View        SummaryView
	CompanySize *CompanySize
	CustomerID  *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

// MonthlyPoint is one first-of-month bucket of the combined series.
type MonthlyPoint struct {
	Date              string  `json:"date"`
	PredictedQuantity float64 `json:"predictedQuantity"`
	ActualSales       float64 `json:"actualSalesMonthly"`
}

// ForecastSummary is the display aggregation consumed by the chart
// header: the combined monthly series and its headline statistics.
type ForecastSummary struct {
	Series       []MonthlyPoint `json:"series"`
	MAPE         float64        `json:"mape"`
	AvgPredicted float64        `json:"avgPredicted"`
	AvgActual    float64        `json:"avgActual"`
	Trend        float64        `json:"trend"`
}
