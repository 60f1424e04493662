package repositories

import (
	"context"

	"tripway/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// companyRepository implements CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new travel company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create creates a new travel company
func (r *companyRepository) Create(ctx context.Context, company *models.TravelCompany) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID gets a travel company by ID
func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.TravelCompany, error) {
	var company models.TravelCompany
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByOwnerID gets the travel company owned by a user
func (r *companyRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.TravelCompany, error) {
	var company models.TravelCompany
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a travel company
func (r *companyRepository) Update(ctx context.Context, company *models.TravelCompany) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete soft deletes a travel company
func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TravelCompany{}, id).Error
}

// List lists travel companies with pagination
func (r *companyRepository) List(ctx context.Context, offset, limit int) ([]*models.TravelCompany, int64, error) {
	var companies []*models.TravelCompany
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.TravelCompany{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// CountRoutes counts live routes belonging to a company
func (r *companyRepository) CountRoutes(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Route{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}
