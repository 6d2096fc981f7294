package entity

import "github.com/shopspring/decimal"

// ReportRecord is one pre-aggregated sales row.
type ReportRecord struct {
	ID        string
	Product   Product
	UnitsSold int
	Revenue   decimal.Decimal
}

// RevenueDigest pairs the sales rows with a grand total fetched separately.
// The two figures are not reconciled.
type RevenueDigest struct {
	Records    []ReportRecord
	GrandTotal decimal.Decimal
}
