package services

import (
	"context"
	"testing"

	"societyhub-be/models"
	"societyhub-be/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNotificationStore(ctrl)
	svc := NewNotificationService(store)
	target := primitive.NewObjectID()

	store.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	n, err := svc.Create(ctx, target, "Dues", "Maintenance due on the 5th", admin())
	require.NoError(t, err)
	assert.Equal(t, target, n.User)
	assert.False(t, n.Read)

	var ferr *models.ForbiddenError
	_, err = svc.Create(ctx, target, "Dues", "x", resident())
	require.ErrorAs(t, err, &ferr)

	var verr *models.ValidationError
	_, err = svc.Create(ctx, target, " ", "x", admin())
	require.ErrorAs(t, err, &verr)

	me := resident()
	store.EXPECT().ListForUser(ctx, me.UserID).Return([]models.Notification{{User: me.UserID}}, nil)
	list, err := svc.List(ctx, me)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
