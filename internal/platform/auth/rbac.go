package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Roles supported by the directory. A user's role is a single static value
// looked up at login; there is no per-resource permission model.
const (
	RoleUser          = "user"
	RoleAdmin         = "admin"
	RoleHospitalAdmin = "hospital_admin"
)

// ValidRole reports whether role is one of the three fixed roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleHospitalAdmin
}

// HasRole is the authorization predicate: it reports whether requesterRole
// satisfies any of the required roles. It is framework-independent so
// services can consult it directly.
func HasRole(requesterRole string, required ...string) bool {
	for _, r := range required {
		if requesterRole == r {
			return true
		}
	}
	return false
}

// RequireRole returns middleware that rejects requests whose authenticated
// role is not one of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c.Request().Context())
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !HasRole(role, roles...) {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
			}
			return next(c)
		}
	}
}
