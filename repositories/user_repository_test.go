package repositories

import (
	"context"
	"testing"

	"societyhub-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserted", func(mt *mtest.T) {
		t := mt.T
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Name: "Asha", Email: "asha@site.com", Role: models.RoleResident}
		require.NoError(t, repo.Create(context.Background(), u))
		assert.False(t, u.ID.IsZero())
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		t := mt.T
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repo.Create(context.Background(), &models.User{Email: "asha@site.com"})
		var conflict *models.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "User already exists", conflict.Message)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		t := mt.T
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "society.users", mtest.FirstBatch, bson.D{
			{Key: "name", Value: "Asha"},
			{Key: "email", Value: "asha@site.com"},
			{Key: "role", Value: "resident"},
			{Key: "apartmentNumber", Value: "A-101"},
		}))

		u, err := repo.FindByEmail(context.Background(), "  ASHA@site.com ")
		require.NoError(t, err)
		assert.Equal(t, models.RoleResident, u.Role)
		assert.Equal(t, "A-101", u.ApartmentNumber)
	})

	mt.Run("missing", func(mt *mtest.T) {
		t := mt.T
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "society.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "nobody@site.com")
		var nf *models.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}
