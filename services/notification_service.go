package services

import (
	"context"
	"strings"
	"time"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, actor models.Actor) ([]models.Notification, error) {
	return s.notifications.ListForUser(ctx, actor.UserID)
}

func (s *NotificationService) Create(ctx context.Context, user primitive.ObjectID, title, message string, actor models.Actor) (*models.Notification, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	title, message = strings.TrimSpace(title), strings.TrimSpace(message)
	if user.IsZero() || title == "" || message == "" {
		return nil, models.ErrValidation("User, title and message are required")
	}

	now := time.Now()
	n := &models.Notification{
		User:      user,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
