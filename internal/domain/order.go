package domain

import "time"

// OrderRow is one raw order transaction as fetched from the store,
// already joined with the product price and the contact→customer linkage.
// CustomerID is nil when the contact row has no customer attached.
type OrderRow struct {
	OrderDate    time.Time
	Quantity     float64
	SellingPrice *float64
	CustomerID   *int64
}

// Revenue derives the monetary value of the order. Orders without a
// resolved price count as zero.
func (o OrderRow) Revenue() float64 {
	if o.SellingPrice == nil {
		return 0
	}
	return o.Quantity * *o.SellingPrice
}

// DailySales is one gap-filled day of summed revenue for a customer.
type DailySales struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}
