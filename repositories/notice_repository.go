package repositories

import (
	"context"
	"time"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NoticeRepository struct {
	store[models.Notice]
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{store: newStore[models.Notice](db, models.NoticesCollection, "Notice")}
}

func (r *NoticeRepository) Create(ctx context.Context, n *models.Notice) error {
	id, err := r.insert(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r *NoticeRepository) List(ctx context.Context) ([]models.Notice, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *NoticeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notice, error) {
	return r.findByID(ctx, id)
}

// Update sets fields and appends attachments in one write.
func (r *NoticeRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M, attachments []string) (*models.Notice, error) {
	set["updatedAt"] = time.Now()
	update := bson.M{"$set": set}
	if len(attachments) > 0 {
		update["$push"] = bson.M{"attachments": bson.M{"$each": attachments}}
	}
	return r.updateByID(ctx, id, update)
}

func (r *NoticeRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
