package entity

import "github.com/shopspring/decimal"

// Table is a venue table as reported by the Order Service.
// Number is a display label ("7", "2U"); an empty Number means the feed
// carried none.
type Table struct {
	ID         string
	Number     string
	OpenAmount decimal.Decimal
}
