package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	user, err := users.Register(&models.UserRegistration{
		Name:     "Wanjiku",
		Email:    "Wanjiku@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleFarmer, user.Role)
	assert.Equal(t, "wanjiku@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	authed, err := users.Authenticate(&models.UserLogin{
		Email:    "wanjiku@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = users.Authenticate(&models.UserLogin{
		Email:    "wanjiku@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	createTestUser(t, db, "taken@example.com", models.UserRoleFarmer)

	_, err := users.Register(&models.UserRegistration{
		Name:     "Second",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewUserService(db).Register(&models.UserRegistration{
		Name:     "Techie",
		Email:    "tech@example.com",
		Password: "secret123",
		Role:     "tech",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	user := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	name := "New Name"
	phone := "+254700000000"
	updated, err := users.UpdateProfile(user.ID, &models.UserProfileUpdate{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+254700000000", *updated.Phone)

	// Password change takes effect on the next login.
	newPassword := "different456"
	_, err = users.UpdateProfile(user.ID, &models.UserProfileUpdate{Password: &newPassword})
	require.NoError(t, err)

	_, err = users.Authenticate(&models.UserLogin{
		Email:    "farmer@example.com",
		Password: "different456",
	})
	require.NoError(t, err)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	auth := NewAuthService("test-secret", time.Hour, "agrilink-test")
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.UserRoleFarmer, claims.Role)

	_, err = auth.ValidateToken(token + "tampered")
	require.Error(t, err)

	other := NewAuthService("other-secret", time.Hour, "agrilink-test")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}
