package middleware

import (
	"net/http"
	"strings"

	"github.com/javohirtm/ombor-backend/api/responses"
	pkgAuth "github.com/javohirtm/ombor-backend/pkg/auth"
	"github.com/javohirtm/ombor-backend/pkg/config"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.AdminID == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing subject"))
				return
			}

			ctx := WithAdminID(r.Context(), claims.AdminID)
			ctx = WithRole(ctx, string(claims.Role))
			if claims.WarehouseID != nil {
				ctx = WithWarehouseID(ctx, *claims.WarehouseID)
			}

			if logg != nil {
				fields := map[string]any{
					"admin_id":   claims.AdminID,
					"actor_role": string(claims.Role),
				}
				if claims.WarehouseID != nil {
					fields["warehouse_id"] = *claims.WarehouseID
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
