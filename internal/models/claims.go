package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Customer permissions
	PermissionAccountRead  = "account:read"
	PermissionActivityRead = "activity:read"
	PermissionVoucherRead  = "voucher:read"

	// Seller permissions
	PermissionVoucherWrite = "voucher:write"
	PermissionScanWrite    = "scan:write"
	PermissionRevenueRead  = "revenue:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleCustomer:
		return []string{
			PermissionAccountRead,
			PermissionActivityRead,
			PermissionVoucherRead,
		}
	case RoleSeller:
		return []string{
			PermissionAccountRead,
			PermissionActivityRead,
			PermissionVoucherRead,
			PermissionVoucherWrite,
			PermissionScanWrite,
			PermissionRevenueRead,
		}
	default:
		return []string{}
	}
}
