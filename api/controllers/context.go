package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/javohirtm/ombor-backend/api/middleware"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
)

func paramsFromRequest(r *http.Request) pagination.Params {
	return pagination.FromQuery(r.URL.Query())
}

// actorID returns the authenticated admin, erroring when the context was
// not seeded by the auth middleware.
func actorID(r *http.Request) (int64, error) {
	adminID := middleware.AdminIDFromContext(r.Context())
	if adminID == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing")
	}
	return adminID, nil
}

// warehouseScope resolves the warehouse a request operates on. Scoped
// tokens carry it in the claims; global admins name one explicitly via
// the warehouse_id query parameter.
func warehouseScope(r *http.Request) (int64, error) {
	if id := middleware.WarehouseIDFromContext(r.Context()); id != nil {
		return *id, nil
	}
	raw := strings.TrimSpace(r.URL.Query().Get("warehouse_id"))
	if raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value <= 0 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "warehouse_id must be a positive integer")
		}
		return value, nil
	}
	return 0, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse scope missing")
}
