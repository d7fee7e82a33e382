package domain

// CustomerForecastBundle is the per-customer aggregate served to the
// dashboard: profile fields, the customer's forecast records, and the
// gap-filled daily actual-sales series. Recomputed in full on every
// fetch, never persisted.
type CustomerForecastBundle struct {
	CustomerID   int64             `json:"customerId"`
	CompanyName  *string           `json:"companyName"`
	CustomerName *string           `json:"customerName"`
	CompanySize  *CompanySize      `json:"companySize"`
	Forecasts    []*ForecastRecord `json:"forecasts"`
	ActualSales  []DailySales      `json:"actualSales"`
}

// TotalSales sums the daily actual-sales amounts. Used as the transient
// ranking key; it is deliberately not part of the JSON shape.
func (b *CustomerForecastBundle) TotalSales() float64 {
	var total float64
	for _, day := range b.ActualSales {
		total += day.Quantity
	}
	return total
}

// Profile returns the customer snapshot carried on the bundle.
func (b *CustomerForecastBundle) Profile() CustomerProfile {
	return CustomerProfile{
		CustomerID:  b.CustomerID,
		CompanyName: b.CompanyName,
		ContactName: b.CustomerName,
		CompanySize: b.CompanySize,
	}
}
