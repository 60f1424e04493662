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

// CompanyHandler handles travel company endpoints
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new travel company handler
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany handles travel company creation
// @Summary Create travel company
// @Description Create a travel company owned by the caller
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompanyInput true "Company data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CompanyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	company, err := h.companyService.Create(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Company name is required")
		}
		return response.InternalServerError(c, "Failed to create company")
	}

	return response.Created(c, "Company created successfully", company)
}

// ListCompanies handles listing travel companies (public)
// @Summary List travel companies
// @Description Get a paginated list of travel companies
// @Tags Companies
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	companies, total, err := h.companyService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list companies")
	}

	return response.Success(c, "Companies retrieved successfully", pagination.NewResponse(companies, params, total))
}

// GetCompany handles getting a travel company by ID
// @Summary Get travel company
// @Description Get a travel company by ID
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.companyService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to get company")
	}

	return response.Success(c, "Company retrieved successfully", company)
}

// UpdateCompany handles updating a travel company
// @Summary Update travel company
// @Description Update a travel company (owner or Admin)
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param body body services.CompanyInput true "Company fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var input services.CompanyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	company, err := h.companyService.Update(c.Context(), uint(id), userID, isAdmin, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this company")
		default:
			return response.InternalServerError(c, "Failed to update company")
		}
	}

	return response.Success(c, "Company updated successfully", company)
}

// DeleteCompany handles deleting a travel company
// @Summary Delete travel company
// @Description Delete a travel company with no remaining routes (owner or Admin)
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	userID, _ := c.Locals("userID").(uint)
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	if err := h.companyService.Delete(c.Context(), uint(id), userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't own this company")
		case errors.Is(err, domain.ErrCompanyHasRoutes):
			return response.Conflict(c, "Company still has routes")
		default:
			return response.InternalServerError(c, "Failed to delete company")
		}
	}

	return response.Success(c, "Company deleted successfully", nil)
}
