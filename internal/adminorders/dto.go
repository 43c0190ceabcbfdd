package adminorders

import (
	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OpenInput carries the fields for opening a cashier order.
type OpenInput struct {
	AdminID     int64
	WarehouseID int64
	Seller      *int64
	UserName    *string
	UserPhone   *string
	Notes       *string
	PaymentType *enums.PaymentMethod
}

// AddItemInput is one scanned line in an add-items batch.
type AddItemInput struct {
	Barcode     int64
	Quantity    decimal.Decimal
	CustomPrice *decimal.Decimal
	Notes       *string
}

// CloseInput carries the fields for completing or cancelling an order.
type CloseInput struct {
	Status       enums.AdminOrderStatus
	SellerID     *int64
	PaymentType  *enums.PaymentMethod
	UserName     *string
	UserPhone    *string
	WithDiscount bool
}

// CloseResult summarises a closed order for the cashier screen.
type CloseResult struct {
	Status        enums.AdminOrderStatus `json:"status"`
	PaymentMethod enums.PaymentMethod    `json:"payment_method"`
	FinalAmount   decimal.Decimal        `json:"final_amount"`
	WithDiscount  bool                   `json:"with_discount"`
}

// ReturnInput carries a partial return against a completed order.
type ReturnInput struct {
	OrderID        int64
	ReturnQuantity decimal.Decimal
}

// CompleteSaleInput creates a completed sale in a single call.
type CompleteSaleInput struct {
	AdminID      int64
	WarehouseID  int64
	Items        []AddItemInput
	SellerID     *int64
	PaymentType  *enums.PaymentMethod
	UserName     *string
	UserPhone    *string
	Notes        *string
	WithDiscount bool
}
