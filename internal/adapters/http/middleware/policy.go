package middleware

import (
	"tripway/internal/core/domain"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// policies maps each protected operation to its allowed roles.
// An operation missing from the table is denied for everyone.
var policies = map[string][]domain.Role{
	"users.list":        {domain.RoleAdmin},
	"users.manage":      {domain.RoleAdmin},
	"companies.create":  {domain.RoleAdmin, domain.RoleTravelCompany},
	"companies.manage":  {domain.RoleAdmin, domain.RoleTravelCompany},
	"hotels.create":     {domain.RoleAdmin, domain.RoleHotel},
	"hotels.manage":     {domain.RoleAdmin, domain.RoleHotel},
	"routes.manage":     {domain.RoleAdmin, domain.RoleTravelCompany},
	"rooms.manage":      {domain.RoleAdmin, domain.RoleHotel},
	"bookings.create":   {domain.RolePassenger},
	"bookings.list":     {domain.RoleAdmin},
	"bookings.manage":   {domain.RoleAdmin, domain.RoleTravelCompany, domain.RoleHotel},
	"reminders.manage":  {domain.RoleAdmin, domain.RoleTravelCompany},
	"dashboard.admin":   {domain.RoleAdmin},
	"dashboard.company": {domain.RoleAdmin, domain.RoleTravelCompany},
	"dashboard.hotel":   {domain.RoleAdmin, domain.RoleHotel},
}

// RequirePolicy authorizes the request against the policy table.
// Unknown operations fail closed.
func RequirePolicy(operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		allowed, known := policies[operation]
		if !known {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		for _, allowedRole := range allowed {
			if domain.Role(role) == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the Admin role
func AdminOnly() fiber.Handler {
	return RequirePolicy("users.manage")
}

// IsAdmin reports whether the request carries the Admin role
func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return domain.Role(role) == domain.RoleAdmin
}
