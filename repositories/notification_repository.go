package repositories

import (
	"context"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository struct {
	store[models.Notification]
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{store: newStore[models.Notification](db, models.NotificationsCollection, "Notification")}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	id, err := r.insert(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r *NotificationRepository) ListForUser(ctx context.Context, user primitive.ObjectID) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"user": user}, bson.D{{Key: "createdAt", Value: -1}})
}
