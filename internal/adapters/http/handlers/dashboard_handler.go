package handlers

import (
	"errors"

	"tripway/internal/core/domain"
	"tripway/internal/core/services"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	companyService   *services.CompanyService
	hotelService     *services.HotelService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService *services.DashboardService,
	companyService *services.CompanyService,
	hotelService *services.HotelService,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		companyService:   companyService,
		hotelService:     hotelService,
	}
}

// AdminDashboard handles the admin overview
// @Summary Admin dashboard
// @Description System-wide statistics (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// CompanyDashboard handles the travel company overview
// @Summary Company dashboard
// @Description Statistics for the caller's travel company
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/company [get]
func (h *DashboardHandler) CompanyDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	company, err := h.companyService.GetOwn(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "You don't have a company yet")
		}
		return response.InternalServerError(c, "Failed to resolve company")
	}

	data, err := h.dashboardService.GetCompanyDashboard(c.Context(), company.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// HotelDashboard handles the hotel overview
// @Summary Hotel dashboard
// @Description Statistics for the caller's hotel
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/hotel [get]
func (h *DashboardHandler) HotelDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	hotel, err := h.hotelService.GetOwn(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrHotelNotFound) {
			return response.NotFound(c, "You don't have a hotel yet")
		}
		return response.InternalServerError(c, "Failed to resolve hotel")
	}

	data, err := h.dashboardService.GetHotelDashboard(c.Context(), hotel.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
