package handlers

import (
	"errors"
	"strconv"
	"time"

	"tripway/internal/core/domain"
	"tripway/internal/core/services"
	"tripway/internal/pkg/pagination"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReminderHandler handles departure reminder endpoints
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// CreateReminder handles reminder creation
// @Summary Create reminder
// @Description Create a departure reminder for a route's booked passengers (company owner or Admin)
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ReminderInput true "Reminder data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reminders [post]
func (h *ReminderHandler) CreateReminder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.ReminderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reminder, err := h.reminderService.Create(c.Context(), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Message and send time are required")
		case errors.Is(err, domain.ErrInvalidPassengerData):
			return response.BadRequest(c, "Route has no booked passengers with complete contact details")
		case errors.Is(err, domain.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this route")
		default:
			return response.InternalServerError(c, "Failed to create reminder")
		}
	}

	return response.Created(c, "Reminder created successfully", reminder)
}

// UpdateReminder handles editing a pending reminder
// @Summary Update reminder
// @Description Edit a pending reminder's message or send time (company owner or Admin)
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Param body body services.ReminderUpdateInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reminders/{id} [put]
func (h *ReminderHandler) UpdateReminder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid reminder ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.ReminderUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reminder, err := h.reminderService.Update(c.Context(), userID, isAdmin, uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReminderNotFound):
			return response.NotFound(c, "Reminder not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this route")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.Conflict(c, "Only pending reminders can be edited")
		default:
			return response.InternalServerError(c, "Failed to update reminder")
		}
	}

	return response.Success(c, "Reminder updated successfully", reminder)
}

// PreviewRecipients handles previewing a route's reminder recipients
// @Summary Preview reminder recipients
// @Description List the passenger contacts a reminder on this route would snapshot (company owner or Admin)
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routeId path int true "Route ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{routeId}/reminders/recipients [get]
func (h *ReminderHandler) PreviewRecipients(c *fiber.Ctx) error {
	routeID, err := strconv.Atoi(c.Params("routeId"))
	if err != nil || routeID < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	recipients, err := h.reminderService.PreviewRecipients(c.Context(), userID, isAdmin, uint(routeID))
	if err != nil {
		return response.DomainError(c, err, "Failed to preview recipients")
	}

	return response.Success(c, "Recipients retrieved successfully", recipients)
}

// GetReminder handles getting a reminder by ID
// @Summary Get reminder
// @Description Get a reminder with its recipient snapshots
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reminders/{id} [get]
func (h *ReminderHandler) GetReminder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid reminder ID")
	}

	reminder, err := h.reminderService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return response.NotFound(c, "Reminder not found")
		}
		return response.InternalServerError(c, "Failed to get reminder")
	}

	return response.Success(c, "Reminder retrieved successfully", reminder)
}

// ListReminders handles listing a route's reminders
// @Summary List reminders
// @Description Get a paginated list of a route's reminders
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routeId path int true "Route ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /routes/{routeId}/reminders [get]
func (h *ReminderHandler) ListReminders(c *fiber.Ctx) error {
	routeID, err := strconv.Atoi(c.Params("routeId"))
	if err != nil || routeID < 1 {
		return response.BadRequest(c, "Invalid route ID")
	}

	params := pagination.GetParams(c)

	reminders, total, err := h.reminderService.ListByRoute(c.Context(), uint(routeID), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			return response.NotFound(c, "Route not found")
		}
		return response.InternalServerError(c, "Failed to list reminders")
	}

	return response.Success(c, "Reminders retrieved successfully", pagination.NewResponse(reminders, params, total))
}

// DeleteReminder handles reminder deletion
// @Summary Delete reminder
// @Description Delete a reminder and its recipient snapshots
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) DeleteReminder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid reminder ID")
	}

	if err := h.reminderService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return response.NotFound(c, "Reminder not found")
		}
		return response.InternalServerError(c, "Failed to delete reminder")
	}

	return response.Success(c, "Reminder deleted successfully", nil)
}

// DispatchDue handles manual dispatch of due reminders (Admin only)
// @Summary Dispatch due reminders
// @Description Send every pending reminder whose time has come (Admin only)
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reminders/dispatch [post]
func (h *ReminderHandler) DispatchDue(c *fiber.Ctx) error {
	sent, err := h.reminderService.DispatchDue(c.Context(), time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to dispatch reminders")
	}

	return response.Success(c, "Reminders dispatched", fiber.Map{"sent": sent})
}
