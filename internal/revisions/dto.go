package revisions

import "github.com/shopspring/decimal"

// StartInput opens a revision session for a warehouse.
type StartInput struct {
	WarehouseID int64
	AdminID     int64
	Notes       *string
}

// ScanInput upserts one counted variant into the open revision.
type ScanInput struct {
	Barcode        int64
	ActualQuantity decimal.Decimal
	Notes          *string
}

// Statistics summarises the discrepancies of one revision.
type Statistics struct {
	TotalItems       int64           `json:"total_items"`
	DiscrepancyCount int64           `json:"discrepancy_count"`
	TotalDifference  decimal.Decimal `json:"total_difference"`
}
