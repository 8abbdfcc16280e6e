package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestNotificationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com", models.UserRoleFarmer)
	notifications := NewNotificationService(db)

	sent, err := notifications.Send(&models.NotificationCreation{
		UserID:  user.ID,
		Title:   "Welcome",
		Message: "Your account is ready.",
	})
	require.NoError(t, err)
	assert.False(t, sent.IsRead)
	assert.Equal(t, "GENERAL", sent.Type)

	inbox, err := notifications.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	require.NoError(t, notifications.MarkRead(sent.ID, user.ID))
	inbox, err = notifications.ListForUser(user.ID)
	require.NoError(t, err)
	assert.True(t, inbox[0].IsRead)

	require.NoError(t, notifications.Delete(sent.ID, user.ID))
	inbox, err = notifications.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestNotificationRecipientScoping(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.UserRoleFarmer)
	other := createTestUser(t, db, "other@example.com", models.UserRoleFarmer)
	notifications := NewNotificationService(db)

	sent, err := notifications.Send(&models.NotificationCreation{
		UserID:  owner.ID,
		Title:   "Private",
		Message: "Only for the owner.",
	})
	require.NoError(t, err)

	// Another user cannot touch someone else's notification.
	err = notifications.MarkRead(sent.ID, other.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	err = notifications.Delete(sent.ID, other.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestNotificationSendUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewNotificationService(db).Send(&models.NotificationCreation{
		UserID:  "missing",
		Title:   "Hello",
		Message: "Anyone there?",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestNotificationBroadcast(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "a@example.com", models.UserRoleFarmer)
	createTestUser(t, db, "b@example.com", models.UserRoleFarmer)
	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)
	notifications := NewNotificationService(db)

	count, err := notifications.Broadcast(&models.NotificationBroadcast{
		Title:   "Maintenance",
		Message: "Downtime tonight.",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	inbox, err := notifications.ListForUser(admin.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}
