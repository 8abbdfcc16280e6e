package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// NotificationService delivers messages to user inboxes
type NotificationService struct {
	db *sql.DB
}

func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send creates a notification for a single user
func (s *NotificationService) Send(req *models.NotificationCreation) (*models.Notification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", req.UserID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check recipient: %w", err)
	}
	if exists == 0 {
		return nil, apperr.NotFound("recipient not found")
	}

	n := s.build(req.UserID, req.Title, req.Message, req.Type)
	if err := s.insert(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Broadcast creates a notification for every user. Returns the number of
// recipients.
func (s *NotificationService) Broadcast(req *models.NotificationBroadcast) (int, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return 0, apperr.InvalidInput(err.Error())
	}

	rows, err := s.db.Query("SELECT id FROM users")
	if err != nil {
		return 0, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan recipient: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.insert(s.build(id, req.Title, req.Message, req.Type)); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// ListForUser returns the caller's notifications, newest first
func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(id, userID string) error {
	result, err := s.db.Exec(
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

// Delete removes one of the caller's notifications
func (s *NotificationService) Delete(id, userID string) error {
	result, err := s.db.Exec(
		"DELETE FROM notifications WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) build(userID, title, message, kind string) *models.Notification {
	if kind == "" {
		kind = "GENERAL"
	}
	return &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     utils.SanitizeString(title),
		Message:   utils.SanitizeString(message),
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *NotificationService) insert(n *models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
