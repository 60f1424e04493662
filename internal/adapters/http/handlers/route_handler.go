package handlers

import (
	"errors"
	"strconv"

	"tripway/internal/core/domain"
	"tripway/internal/core/services"
	"tripway/internal/pkg/pagination"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RouteHandler handles route and seat endpoints
type RouteHandler struct {
	routeService *services.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// CreateRoute handles route creation with its seat map
// @Summary Create route
// @Description Create a route with its initial seat map (company owner or Admin)
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RouteInput true "Route data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.RouteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	route, err := h.routeService.Create(c.Context(), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid route data")
		case errors.Is(err, domain.ErrDuplicateSeat):
			return response.BadRequest(c, "Duplicate seat number in seat map")
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this company")
		default:
			return response.InternalServerError(c, "Failed to create route")
		}
	}

	return response.Created(c, "Route created successfully", route)
}

// ListRoutes handles searching routes (public)
// @Summary List routes
// @Description Get a paginated list of routes, optionally filtered by origin and destination
// @Tags Routes
// @Accept json
// @Produce json
// @Param origin query string false "Filter by origin"
// @Param destination query string false "Filter by destination"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /routes [get]
func (h *RouteHandler) ListRoutes(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	routes, total, err := h.routeService.List(c.Context(), c.Query("origin"), c.Query("destination"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list routes")
	}

	return response.Success(c, "Routes retrieved successfully", pagination.NewResponse(routes, params, total))
}

// GetRoute handles getting a route with its seat map
// @Summary Get route
// @Description Get a route with its seats
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	route, err := h.routeService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to get route")
	}

	return response.Success(c, "Route retrieved successfully", route)
}

// UpdateRoute handles updating a route
// @Summary Update route
// @Description Update route schedule and price (company owner or Admin)
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Param body body services.RouteInput true "Route fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id} [put]
func (h *RouteHandler) UpdateRoute(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.RouteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	route, err := h.routeService.Update(c.Context(), uint(id), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this route")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid route data")
		default:
			return response.InternalServerError(c, "Failed to update route")
		}
	}

	return response.Success(c, "Route updated successfully", route)
}

// DeleteRoute handles deleting a route
// @Summary Delete route
// @Description Delete a route and its seats (company owner or Admin)
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id} [delete]
func (h *RouteHandler) DeleteRoute(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	if err := h.routeService.Delete(c.Context(), uint(id), userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, domain.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this route")
		default:
			return response.InternalServerError(c, "Failed to delete route")
		}
	}

	return response.Success(c, "Route deleted successfully", nil)
}

// ListSeats handles listing a route's seats (public)
// @Summary List seats
// @Description Get the seat map of a route
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{id}/seats [get]
func (h *RouteHandler) ListSeats(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	seats, err := h.routeService.ListSeats(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to list seats")
	}

	return response.Success(c, "Seats retrieved successfully", seats)
}

// AddSeat handles adding a seat to a route
// @Summary Add seat
// @Description Add a seat to an existing route (company owner or Admin)
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Param body body services.SeatInput true "Seat data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /routes/{id}/seats [post]
func (h *RouteHandler) AddSeat(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.SeatInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	seat, err := h.routeService.AddSeat(c.Context(), uint(id), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this route")
		case errors.Is(err, domain.ErrDuplicateSeat):
			return response.Conflict(c, "Seat number already exists on this route")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Seat number is required")
		default:
			return response.InternalServerError(c, "Failed to add seat")
		}
	}

	return response.Created(c, "Seat added successfully", seat)
}
