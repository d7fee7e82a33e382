package domain

import "fmt"

// CompanySize classifies a customer by headcount bracket.
type CompanySize string

const (
	CompanySizeLarge CompanySize = "large"
	CompanySizeMid   CompanySize = "mid"
	CompanySizeSmall CompanySize = "small"
)

// Valid reports whether the size is one of the known brackets.
func (s CompanySize) Valid() bool {
	switch s {
	case CompanySizeLarge, CompanySizeMid, CompanySizeSmall:
		return true
	}
	return false
}

type CustomerProfile struct {
	CustomerID  int64        `json:"customerId"`
	CompanyName *string      `json:"companyName"`
	ContactName *string      `json:"customerName"`
	CompanySize *CompanySize `json:"companySize"`
}

// DisplayName resolves the label shown for a customer when the company
// name is missing.
func (c CustomerProfile) DisplayName() string {
	if c.CompanyName != nil && *c.CompanyName != "" {
		return *c.CompanyName
	}
	return fmt.Sprintf("Customer %d", c.CustomerID)
}
