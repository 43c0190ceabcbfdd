package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/javohirtm/ombor-backend/api/responses"
	"github.com/javohirtm/ombor-backend/api/validators"
	"github.com/javohirtm/ombor-backend/internal/adminorders"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/logger"
)

type addItemsRequest struct {
	Items []adminOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AdminOrderItemsAdd scans a batch of barcodes into the caller's open order.
func AdminOrderItemsAdd(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload addItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		open, err := svc.CurrentOpen(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]adminorders.AddItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, item.toInput())
		}

		order, err := svc.AddItems(r.Context(), adminID, open.ID, warehouseID, items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderItemsList returns the items of the caller's open order.
func AdminOrderItemsList(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		open, err := svc.CurrentOpen(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, open.Items)
	}
}

type itemQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// AdminOrderItemUpdate changes a line quantity on the open order.
func AdminOrderItemUpdate(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		itemID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateItemQuantity(r.Context(), adminID, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderItemDelete removes a line from the open order.
func AdminOrderItemDelete(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		itemID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.DeleteItem(r.Context(), adminID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type returnItemRequest struct {
	OrderID        int64           `json:"order_id" validate:"required,gt=0"`
	ReturnQuantity decimal.Decimal `json:"return_quantity" validate:"required"`
}

// AdminOrderItemReturn registers a partial return against a completed sale.
func AdminOrderItemReturn(svc adminorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin order service unavailable"))
			return
		}

		itemID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload returnItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.ReturnItem(r.Context(), itemID, adminorders.ReturnInput{
			OrderID:        payload.OrderID,
			ReturnQuantity: payload.ReturnQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
