package adminorders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javohirtm/ombor-backend/internal/promotions"
	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StockGuard mutates variant stock under row locks.
type StockGuard interface {
	Deduct(ctx context.Context, tx *gorm.DB, variantID int64, qty decimal.Decimal) (*models.ProductVariant, error)
	Restore(ctx context.Context, tx *gorm.DB, variantID int64, qty decimal.Decimal) (*models.ProductVariant, error)
}

// PromotionResolver picks the winning promotion for a variant.
type PromotionResolver interface {
	ActiveForVariant(ctx context.Context, tx *gorm.DB, variantID int64) (*models.Promotion, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	stock      StockGuard
	promotions PromotionResolver
}

// NewService builds the admin order service with its dependencies.
func NewService(repo Repository, tx txRunner, stock StockGuard, resolver PromotionResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock guard required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("promotion resolver required")
	}
	return &service{repo: repo, tx: tx, stock: stock, promotions: resolver}, nil
}

func (s *service) Open(ctx context.Context, input OpenInput) (*models.AdminOrder, error) {
	if input.AdminID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin identity missing")
	}
	if input.WarehouseID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse context missing")
	}

	order := &models.AdminOrder{
		By:          input.AdminID,
		Seller:      input.Seller,
		Status:      enums.AdminOrderStatusOpened,
		UserName:    input.UserName,
		UserPhone:   input.UserPhone,
		Notes:       input.Notes,
		WarehouseID: input.WarehouseID,
		PaymentType: enums.PaymentMethodCash,
	}
	if input.PaymentType != nil {
		if !input.PaymentType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
		}
		order.PaymentType = *input.PaymentType
	}

	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		if db.IsUniqueViolation(err, "uq_admin_orders_single_open") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin already has an open order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin order")
	}
	return order, nil
}

func (s *service) CurrentOpen(ctx context.Context, adminID int64) (*models.AdminOrder, error) {
	order, err := s.repo.FindOpenByAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open order found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
	}
	return order, nil
}

func (s *service) GetByID(ctx context.Context, orderID int64) (*models.AdminOrder, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListClosed(ctx context.Context, adminID int64, params pagination.Params) (*pagination.Page, error) {
	orders, total, err := s.repo.ListClosedByAdmin(ctx, adminID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list closed orders")
	}
	page := pagination.NewPage(orders, total, params)
	return &page, nil
}

// AddItems applies the whole batch in one transaction; the first
// failure aborts every line.
func (s *service) AddItems(ctx context.Context, adminID, orderID, warehouseID int64, items []AddItemInput) (*models.AdminOrder, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}
	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "open order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.By != adminID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to admin")
		}
		if order.Status != enums.AdminOrderStatusOpened {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not open")
		}

		total := order.TotalAmount
		totalWithDiscount := order.TotalAmountWithDiscount

		for _, line := range items {
			variant, err := repo.FindVariantByBarcode(ctx, warehouseID, line.Barcode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
						WithDetails(map[string]any{"barcode": line.Barcode})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
			}

			unitPrice := variant.CurrentPrice
			if line.CustomPrice != nil {
				unitPrice = *line.CustomPrice
			}
			discountedPrice := unitPrice
			promo, err := s.promotions.ActiveForVariant(ctx, tx, variant.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve promotion")
			}
			if promo != nil {
				discountedPrice = promotions.DiscountedPrice(unitPrice, promo.Discount)
			}

			existing, err := repo.FindItem(ctx, order.ID, variant.ID)
			switch {
			case err == nil:
				oldGross := existing.TotalAmount
				oldDiscounted := existing.TotalAmountWithDiscount

				newQty := existing.Quantity.Add(line.Quantity)
				newGross := newQty.Mul(unitPrice)
				newDiscounted := newQty.Mul(discountedPrice)

				updates := map[string]any{
					"quantity":                   newQty,
					"price_per_unit":             unitPrice,
					"price_with_discount":        discountedPrice,
					"total_amount":               newGross,
					"total_amount_with_discount": newDiscounted,
				}
				if line.Notes != nil {
					updates["notes"] = *line.Notes
				}
				if err := repo.UpdateItem(ctx, existing.ID, updates); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge order item")
				}

				total = total.Sub(oldGross).Add(newGross)
				totalWithDiscount = totalWithDiscount.Sub(oldDiscounted).Add(newDiscounted)

			case errors.Is(err, gorm.ErrRecordNotFound):
				gross := line.Quantity.Mul(unitPrice)
				discounted := line.Quantity.Mul(discountedPrice)
				item := &models.AdminOrderItem{
					OrderID:                 order.ID,
					ProductVariantID:        variant.ID,
					Quantity:                line.Quantity,
					Notes:                   line.Notes,
					PricePerUnit:            unitPrice,
					PriceWithDiscount:       &discountedPrice,
					TotalAmount:             gross,
					TotalAmountWithDiscount: discounted,
				}
				if _, err := repo.CreateItem(ctx, item); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
				}
				total = total.Add(gross)
				totalWithDiscount = totalWithDiscount.Add(discounted)

			default:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
			}
		}

		return repo.UpdateOrder(ctx, order.ID, map[string]any{
			"total_amount":               total,
			"total_amount_with_discount": totalWithDiscount,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) UpdateItemQuantity(ctx context.Context, adminID, itemID int64, quantity decimal.Decimal) (*models.AdminOrder, error) {
	if !quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var orderID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, order, err := s.loadOwnedItem(ctx, repo, adminID, itemID, enums.AdminOrderStatusOpened)
		if err != nil {
			return err
		}
		orderID = order.ID

		// Book stock moves by old - new, so growing the line can fail
		// on insufficient stock.
		diff := item.Quantity.Sub(quantity)
		switch {
		case diff.IsPositive():
			if _, err := s.stock.Restore(ctx, tx, item.ProductVariantID, diff); err != nil {
				return err
			}
		case diff.IsNegative():
			if _, err := s.stock.Deduct(ctx, tx, item.ProductVariantID, diff.Neg()); err != nil {
				return err
			}
		}

		newGross := quantity.Mul(item.PricePerUnit)
		discountedUnit := item.PricePerUnit
		if item.PriceWithDiscount != nil {
			discountedUnit = *item.PriceWithDiscount
		}
		newDiscounted := quantity.Mul(discountedUnit)

		if err := repo.UpdateItem(ctx, item.ID, map[string]any{
			"quantity":                   quantity,
			"total_amount":               newGross,
			"total_amount_with_discount": newDiscounted,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}

		return repo.UpdateOrder(ctx, order.ID, map[string]any{
			"total_amount":               order.TotalAmount.Sub(item.TotalAmount).Add(newGross),
			"total_amount_with_discount": order.TotalAmountWithDiscount.Sub(item.TotalAmountWithDiscount).Add(newDiscounted),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) DeleteItem(ctx context.Context, adminID, itemID int64) (*models.AdminOrder, error) {
	var orderID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, order, err := s.loadOwnedItem(ctx, repo, adminID, itemID, enums.AdminOrderStatusOpened)
		if err != nil {
			return err
		}
		orderID = order.ID

		if _, err := s.stock.Restore(ctx, tx, item.ProductVariantID, item.Quantity); err != nil {
			return err
		}

		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
			"total_amount":               order.TotalAmount.Sub(item.TotalAmount),
			"total_amount_with_discount": order.TotalAmountWithDiscount.Sub(item.TotalAmountWithDiscount),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order totals")
		}

		if err := repo.DeleteItem(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

func (s *service) ReturnItem(ctx context.Context, itemID int64, input ReturnInput) (*models.AdminOrderItem, error) {
	if !input.ReturnQuantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return quantity must be positive")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		if item.OrderID != input.OrderID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}

		order, err := repo.FindByID(ctx, item.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.AdminOrderStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not completed")
		}
		if input.ReturnQuantity.GreaterThan(item.Quantity) {
			return pkgerrors.New(pkgerrors.CodeValidation, "return quantity exceeds ordered quantity")
		}

		if _, err := s.stock.Restore(ctx, tx, item.ProductVariantID, input.ReturnQuantity); err != nil {
			return err
		}

		newQty := item.Quantity.Sub(input.ReturnQuantity)
		newGross := newQty.Mul(item.PricePerUnit)
		discountedUnit := item.PricePerUnit
		if item.PriceWithDiscount != nil {
			discountedUnit = *item.PriceWithDiscount
		}
		newDiscounted := newQty.Mul(discountedUnit)

		if err := repo.UpdateItem(ctx, item.ID, map[string]any{
			"quantity":                   newQty,
			"total_amount":               newGross,
			"total_amount_with_discount": newDiscounted,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}

		return repo.UpdateOrder(ctx, order.ID, map[string]any{
			"total_amount":               order.TotalAmount.Sub(item.TotalAmount).Add(newGross),
			"total_amount_with_discount": order.TotalAmountWithDiscount.Sub(item.TotalAmountWithDiscount).Add(newDiscounted),
		})
	})
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order item")
	}
	return item, nil
}

func (s *service) Close(ctx context.Context, adminID int64, input CloseInput) (*CloseResult, error) {
	if input.Status != enums.AdminOrderStatusCompleted && input.Status != enums.AdminOrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be completed or cancelled")
	}

	var result CloseResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOpenByAdmin(ctx, adminID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open order found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
		}

		if input.Status == enums.AdminOrderStatusCompleted {
			for _, item := range order.Items {
				if _, err := s.stock.Deduct(ctx, tx, item.ProductVariantID, item.Quantity); err != nil {
					return err
				}
			}
		}

		updates := map[string]any{"status": input.Status}
		paymentType := enums.PaymentMethodCash
		if input.PaymentType != nil {
			if !input.PaymentType.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
			}
			paymentType = *input.PaymentType
		}
		updates["payment_type"] = paymentType
		if input.SellerID != nil {
			updates["seller"] = *input.SellerID
		}
		if input.UserName != nil {
			updates["user_name"] = *input.UserName
		}
		if input.UserPhone != nil {
			updates["user_phone"] = *input.UserPhone
		}
		if input.Status == enums.AdminOrderStatusCancelled {
			updates["canceled_at"] = time.Now().UTC()
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close order")
		}

		final := order.TotalAmount
		if input.WithDiscount {
			final = order.TotalAmountWithDiscount
		}
		result = CloseResult{
			Status:        input.Status,
			PaymentMethod: paymentType,
			FinalAmount:   final,
			WithDiscount:  input.WithDiscount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CompleteSale creates a completed order with its items and stock
// deduction in one call, for sales that skip the open-cart flow.
func (s *service) CompleteSale(ctx context.Context, input CompleteSaleInput) (*models.AdminOrder, *CloseResult, error) {
	if len(input.Items) == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}
	for _, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}
	paymentType := enums.PaymentMethodCash
	if input.PaymentType != nil {
		if !input.PaymentType.IsValid() {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
		}
		paymentType = *input.PaymentType
	}

	var orderID int64
	var result CloseResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := &models.AdminOrder{
			By:          input.AdminID,
			Seller:      input.SellerID,
			Status:      enums.AdminOrderStatusCompleted,
			UserName:    input.UserName,
			UserPhone:   input.UserPhone,
			Notes:       input.Notes,
			WarehouseID: input.WarehouseID,
			PaymentType: paymentType,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create completed order")
		}
		orderID = order.ID

		total := decimal.Zero
		totalWithDiscount := decimal.Zero

		for _, line := range input.Items {
			variant, err := repo.FindVariantByBarcode(ctx, input.WarehouseID, line.Barcode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
						WithDetails(map[string]any{"barcode": line.Barcode})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
			}

			if _, err := s.stock.Deduct(ctx, tx, variant.ID, line.Quantity); err != nil {
				return err
			}

			unitPrice := variant.CurrentPrice
			if line.CustomPrice != nil {
				unitPrice = *line.CustomPrice
			}
			discountedPrice := unitPrice
			promo, err := s.promotions.ActiveForVariant(ctx, tx, variant.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve promotion")
			}
			if promo != nil {
				discountedPrice = promotions.DiscountedPrice(unitPrice, promo.Discount)
			}

			gross := line.Quantity.Mul(unitPrice)
			discounted := line.Quantity.Mul(discountedPrice)
			item := &models.AdminOrderItem{
				OrderID:                 order.ID,
				ProductVariantID:        variant.ID,
				Quantity:                line.Quantity,
				Notes:                   line.Notes,
				PricePerUnit:            unitPrice,
				PriceWithDiscount:       &discountedPrice,
				TotalAmount:             gross,
				TotalAmountWithDiscount: discounted,
			}
			if _, err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}
			total = total.Add(gross)
			totalWithDiscount = totalWithDiscount.Add(discounted)
		}

		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
			"total_amount":               total,
			"total_amount_with_discount": totalWithDiscount,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order totals")
		}

		final := total
		if input.WithDiscount {
			final = totalWithDiscount
		}
		result = CloseResult{
			Status:        enums.AdminOrderStatusCompleted,
			PaymentMethod: paymentType,
			FinalAmount:   final,
			WithDiscount:  input.WithDiscount,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, &result, nil
}

func (s *service) loadOwnedItem(ctx context.Context, repo Repository, adminID, itemID int64, wantStatus enums.AdminOrderStatus) (*models.AdminOrderItem, *models.AdminOrder, error) {
	item, err := repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
	}

	order, err := repo.FindByID(ctx, item.OrderID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.By != adminID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to admin")
	}
	if order.Status != wantStatus {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not open")
	}
	return item, order, nil
}
