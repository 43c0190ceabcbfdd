package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javohirtm/ombor-backend/internal/notifications"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier records a notification row for a status transition.
type Notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput) (*models.Notification, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier Notifier
}

// NewService builds the customer order service with its dependencies.
func NewService(repo Repository, tx txRunner, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, tx: tx, notifier: notifier}, nil
}

// Create opens a pending order. Line totals are quantity times the
// product's main variant price; stock is not reserved at this stage.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}
	orderType := enums.OrderTypeRegular
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order type")
		}
		orderType = *input.Type
	}

	var orderID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := &models.Order{
			UserID: input.UserID,
			Status: enums.OrderStatusPending,
			Type:   orderType,
		}
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		orderID = order.ID

		total := decimal.Zero
		for _, line := range input.Items {
			product, err := repo.FindProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}

			price, err := productPrice(product)
			if err != nil {
				return err
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			item := &models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				Quantity:    line.Quantity,
				TotalAmount: lineTotal,
			}
			if _, err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}
			total = total.Add(lineTotal)
		}

		return repo.Update(ctx, order.ID, map[string]any{"total_amount": total})
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, input.UserID, orderID, "Order received", enums.NotificationStatusInfo)

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error) {
	orders, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	page := pagination.NewPage(orders, total, params)
	return &page, nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")
		}

		return repo.Update(ctx, order.ID, map[string]any{
			"status":      enums.OrderStatusCanceled,
			"canceled_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, userID, orderID, "Order cancelled", enums.NotificationStatusWarning)

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

// notifyTransition writes the status notification outside the order
// transaction; a failed write must not undo the order itself.
func (s *service) notifyTransition(ctx context.Context, userID, orderID int64, title string, kind enums.NotificationStatus) {
	_, err := s.notifier.Notify(ctx, notifications.NotifyInput{
		Title:   title,
		Type:    kind,
		UserID:  &userID,
		OrderID: &orderID,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Int64("order_id", orderID).
			Msg("order notification write failed")
	}
}

func productPrice(product *models.Product) (decimal.Decimal, error) {
	if len(product.Variants) == 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeStateConflict, "product has no purchasable variant").
			WithDetails(map[string]any{"product_id": product.ID})
	}
	for _, variant := range product.Variants {
		if variant.IsMain {
			return variant.CurrentPrice, nil
		}
	}
	return product.Variants[0].CurrentPrice, nil
}
