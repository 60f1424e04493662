package services

import (
	"context"
	"errors"
	"log"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/core/domain"
	"tripway/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user account business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// GetProfile gets a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	// 1. Load user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// 2. Email change must stay unique
	if input.Email != "" && input.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		user.Email = input.Email
	}

	if input.Phone != "" {
		user.Phone = input.Phone
	}

	// 3. Optional password change
	if input.Password != "" {
		if !password.ValidatePassword(input.Password) {
			return nil, domain.ErrInvalidInput
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	// 4. Persist
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Profile updated: %s", user.Username)
	return user.ToResponse(), nil
}

// List lists users with pagination (admin only, enforced at the route)
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, total, nil
}

// SetActive enables or disables a user account
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// A disabled account must not keep a renewable session
	if !active {
		if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, nil); err != nil {
			return err
		}
	}

	log.Printf("✅ User %s active=%v", user.Username, active)
	return nil
}

// Delete soft deletes a user account
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ User deleted [ID: %d]", userID)
	return nil
}
