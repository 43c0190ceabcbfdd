package orders

import "github.com/javohirtm/ombor-backend/pkg/enums"

// CreateInput opens a customer order with its product lines.
type CreateInput struct {
	UserID int64
	Type   *enums.OrderType
	Items  []ItemInput
}

// ItemInput is one requested product line.
type ItemInput struct {
	ProductID int64
	Quantity  int
}
