package services

import (
	"context"
	"errors"
	"log"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/core/domain"

	"gorm.io/gorm"
)

// CompanyService handles travel company business logic
type CompanyService struct {
	companyRepo repositories.CompanyRepository
}

// NewCompanyService creates a new travel company service
func NewCompanyService(companyRepo repositories.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents travel company create/update input
type CompanyInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Create creates a travel company owned by the calling user
func (s *CompanyService) Create(ctx context.Context, ownerID uint, input *CompanyInput) (*models.TravelCompany, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	company := &models.TravelCompany{
		OwnerID: ownerID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	log.Printf("✅ Travel company created: %s [ID: %d]", company.Name, company.ID)
	return company, nil
}

// GetByID gets a travel company
func (s *CompanyService) GetByID(ctx context.Context, id uint) (*models.TravelCompany, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// GetOwn gets the company owned by the calling user
func (s *CompanyService) GetOwn(ctx context.Context, ownerID uint) (*models.TravelCompany, error) {
	company, err := s.companyRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Update updates a travel company. Non-admin callers may only touch
// their own company.
func (s *CompanyService) Update(ctx context.Context, id, callerID uint, isAdmin bool, input *CompanyInput) (*models.TravelCompany, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && company.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Email != "" {
		company.Email = input.Email
	}
	if input.Phone != "" {
		company.Phone = input.Phone
	}
	if input.Address != "" {
		company.Address = input.Address
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	log.Printf("✅ Travel company updated: %s [ID: %d]", company.Name, company.ID)
	return company, nil
}

// Delete deletes a travel company. A company with live routes cannot go.
func (s *CompanyService) Delete(ctx context.Context, id, callerID uint, isAdmin bool) error {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && company.OwnerID != callerID {
		return domain.ErrForbidden
	}

	routes, err := s.companyRepo.CountRoutes(ctx, id)
	if err != nil {
		return err
	}
	if routes > 0 {
		return domain.ErrCompanyHasRoutes
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Travel company deleted [ID: %d]", id)
	return nil
}

// List lists travel companies with pagination
func (s *CompanyService) List(ctx context.Context, offset, limit int) ([]*models.TravelCompany, int64, error) {
	return s.companyRepo.List(ctx, offset, limit)
}
