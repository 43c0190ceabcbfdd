package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javohirtm/ombor-backend/api/responses"
	"github.com/javohirtm/ombor-backend/api/validators"
	"github.com/javohirtm/ombor-backend/internal/adminorders"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/logger"
)

type adminOrderOpenRequest struct {
	Seller      *int64  `json:"seller_id"`
	UserName    *string `json:"user_name"`
	UserPhone   *string `json:"user_phone"`
	Notes       *string `json:"notes"`
	PaymentType *string `json:"payment_type"`
}

func parsePaymentType(raw *string) (*enums.PaymentMethod, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
	}
	return &method, nil
}

// AdminOrderOpen starts a cashier order for the authenticated admin.
func AdminOrderOpen(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminOrderOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentType, err := parsePaymentType(payload.PaymentType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Open(r.Context(), adminorders.OpenInput{
			AdminID:     adminID,
			WarehouseID: warehouseID,
			Seller:      payload.Seller,
			UserName:    payload.UserName,
			UserPhone:   payload.UserPhone,
			Notes:       payload.Notes,
			PaymentType: paymentType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// AdminOrderCurrent returns the caller's open cashier order.
func AdminOrderCurrent(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CurrentOpen(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type adminOrderCloseRequest struct {
	Status       string  `json:"status" validate:"required"`
	SellerID     *int64  `json:"seller_id"`
	PaymentType  *string `json:"payment_type"`
	UserName     *string `json:"user_name"`
	UserPhone    *string `json:"user_phone"`
	WithDiscount bool    `json:"with_discount"`
}

// AdminOrderClose completes or cancels the caller's open order.
func AdminOrderClose(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminOrderCloseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseAdminOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
			return
		}

		paymentType, err := parsePaymentType(payload.PaymentType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Close(r.Context(), adminID, adminorders.CloseInput{
			Status:       status,
			SellerID:     payload.SellerID,
			PaymentType:  paymentType,
			UserName:     payload.UserName,
			UserPhone:    payload.UserPhone,
			WithDiscount: payload.WithDiscount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type adminOrderItemRequest struct {
	Barcode     int64            `json:"barcode" validate:"required,gt=0"`
	Quantity    decimal.Decimal  `json:"quantity"`
	CustomPrice *decimal.Decimal `json:"custom_price"`
	Notes       *string          `json:"notes"`
}

func (req adminOrderItemRequest) toInput() adminorders.AddItemInput {
	return adminorders.AddItemInput{
		Barcode:     req.Barcode,
		Quantity:    req.Quantity,
		CustomPrice: req.CustomPrice,
		Notes:       req.Notes,
	}
}

type adminOrderCompleteRequest struct {
	Items        []adminOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	SellerID     *int64                  `json:"seller_id"`
	PaymentType  *string                 `json:"payment_type"`
	UserName     *string                 `json:"user_name"`
	UserPhone    *string                 `json:"user_phone"`
	Notes        *string                 `json:"notes"`
	WithDiscount bool                    `json:"with_discount"`
}

// AdminOrderComplete creates a completed sale in one shot.
func AdminOrderComplete(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouseID, err := warehouseScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminOrderCompleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentType, err := parsePaymentType(payload.PaymentType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]adminorders.AddItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, item.toInput())
		}

		order, result, err := svc.CompleteSale(r.Context(), adminorders.CompleteSaleInput{
			AdminID:      adminID,
			WarehouseID:  warehouseID,
			Items:        items,
			SellerID:     payload.SellerID,
			PaymentType:  paymentType,
			UserName:     payload.UserName,
			UserPhone:    payload.UserPhone,
			Notes:        payload.Notes,
			WithDiscount: payload.WithDiscount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order":   order,
			"summary": result,
		})
	}
}

// AdminOrderHistory lists the caller's closed cashier orders.
func AdminOrderHistory(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListClosed(r.Context(), adminID, paramsFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
