package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	UsersCollection         = "users"
	MeetingsCollection      = "meetings"
	ComplaintsCollection    = "complaints"
	NoticesCollection       = "notices"
	PaymentsCollection      = "payments"
	NotificationsCollection = "notifications"
)

// EnsureIndexes creates the unique email index and the lookup indexes used by
// the role-scoped listings.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	lookups := map[string]bson.D{
		ComplaintsCollection:    {{Key: "resident", Value: 1}, {Key: "createdAt", Value: -1}},
		PaymentsCollection:      {{Key: "resident", Value: 1}, {Key: "dueDate", Value: -1}},
		NotificationsCollection: {{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	for name, keys := range lookups {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return err
		}
	}
	return nil
}
