package middleware

import "context"

type contextKey string

const (
	ctxAdminID     contextKey = "admin_id"
	ctxRole        contextKey = "actor_role"
	ctxWarehouseID contextKey = "warehouse_id"
)

func AdminIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxAdminID).(int64); ok {
		return v
	}
	return 0
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WarehouseIDFromContext returns the warehouse scope carried by the token,
// or nil for global admins.
func WarehouseIDFromContext(ctx context.Context) *int64 {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxWarehouseID).(int64); ok {
		return &v
	}
	return nil
}

// WithAdminID injects the admin identifier into the context.
func WithAdminID(ctx context.Context, adminID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminID, adminID)
}

// WithRole injects the coarse actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithWarehouseID injects the warehouse scope into the context for downstream handlers.
func WithWarehouseID(ctx context.Context, warehouseID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxWarehouseID, warehouseID)
}
