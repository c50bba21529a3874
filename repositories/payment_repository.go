package repositories

import (
	"context"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository struct {
	store[models.Payment]
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{store: newStore[models.Payment](db, models.PaymentsCollection, "Payment")}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	id, err := r.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// List returns payments for one resident, or everyone's when resident is nil,
// ordered by the given field descending.
func (r *PaymentRepository) List(ctx context.Context, resident *primitive.ObjectID, sortField string) ([]models.Payment, error) {
	filter := bson.M{}
	if resident != nil {
		filter["resident"] = *resident
	}
	return r.find(ctx, filter, bson.D{{Key: sortField, Value: -1}})
}

// Update applies a raw update document, used for status changes that also
// clear paidAt.
func (r *PaymentRepository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Payment, error) {
	return r.updateByID(ctx, id, update)
}
