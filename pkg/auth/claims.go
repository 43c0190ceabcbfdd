package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/javohirtm/ombor-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AdminID     int64
	WarehouseID *int64
	Role        enums.AdminRole
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	AdminID     int64           `json:"admin_id"`
	WarehouseID *int64          `json:"warehouse_id,omitempty"`
	Role        enums.AdminRole `json:"role"`
	jwt.RegisteredClaims
}
