package repositories

import (
	"context"
	"time"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ComplaintRepository struct {
	store[models.Complaint]
}

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{store: newStore[models.Complaint](db, models.ComplaintsCollection, "Complaint")}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	id, err := r.insert(ctx, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// List returns complaints newest first. A nil resident lists everyone's.
func (r *ComplaintRepository) List(ctx context.Context, resident *primitive.ObjectID) ([]models.Complaint, error) {
	filter := bson.M{}
	if resident != nil {
		filter["resident"] = *resident
	}
	return r.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	return r.findByID(ctx, id)
}

// Update sets the given fields and returns the stored complaint.
func (r *ComplaintRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Complaint, error) {
	set["updatedAt"] = time.Now()
	return r.updateByID(ctx, id, bson.M{"$set": set})
}

func (r *ComplaintRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
