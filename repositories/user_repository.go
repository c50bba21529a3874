package repositories

import (
	"context"
	"strings"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	store[models.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{store: newStore[models.User](db, models.UsersCollection, "User")}
}

// Create inserts the user. A duplicate email surfaces as a ConflictError.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	id, err := r.insert(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByEmails removes the given accounts; used when reseeding.
func (r *UserRepository) DeleteByEmails(ctx context.Context, emails []string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
