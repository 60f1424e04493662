package services

import (
	"context"
	"testing"

	"tripway/internal/adapters/persistence/models"
	"tripway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     string(domain.RolePassenger),
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUpdateProfileChangesContact(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", "alice@example.com")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Email: "alice@tripway.dev",
		Phone: "0899999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@tripway.dev", updated.Email)
	assert.Equal(t, "0899999999", updated.Phone)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "alice", "alice@example.com")
	bob := seedUser(t, repo, "bob", "bob@example.com")

	_, err := svc.UpdateProfile(context.Background(), bob.ID, &UpdateProfileInput{
		Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateProfileKeepOwnEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", "alice@example.com")

	// Re-submitting the current email is not a conflict
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Email: "alice@example.com",
		Phone: "0811111111",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUpdateProfileShortPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", "alice@example.com")

	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
