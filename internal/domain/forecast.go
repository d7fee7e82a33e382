package domain

// ForecastRecord is one predicted-quantity estimate for a customer,
// carrying the customer profile snapshot from the join. Dates travel as
// plain calendar strings (YYYY-MM-DD); the generation date keeps the full
// timestamp the forecasting job wrote.
type ForecastRecord struct {
	CofID                  int64        `json:"cofId"`
	CustomerID             int64        `json:"customerId"`
	CompanyName            *string      `json:"companyName"`
	CustomerName           *string      `json:"customerName"`
	CompanySize            *CompanySize `json:"companySize"`
	PredictedDate          string       `json:"predictedDate"`
	PredictedQuantity      float64      `json:"predictedQuantity"`
	MAPE                   *float64     `json:"mape"`
	PredictionModel        string       `json:"predictionModel"`
	Probability            *float64     `json:"probability"`
	ForecastGenerationDate string       `json:"forecastGenerationDate"`
}

// Profile extracts the customer snapshot embedded in the record.
func (f *ForecastRecord) Profile() CustomerProfile {
	return CustomerProfile{
		CustomerID:  f.CustomerID,
		CompanyName: f.CompanyName,
		ContactName: f.CustomerName,
		CompanySize: f.CompanySize,
	}
}

// UpdateForecastRequest is the partial edit payload for one forecast
// record. Nil fields are left untouched.
type UpdateForecastRequest struct {
	CofID             int64    `json:"-"`
	PredictedDate     *string  `json:"predictedDate"`
	PredictedQuantity *float64 `json:"predictedQuantity"`
	MAPE              *float64 `json:"mape"`
	Probability       *float64 `json:"probability"`
	PredictionModel   *string  `json:"predictionModel"`
}
