package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"societyhub-be/models"
	"societyhub-be/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestNoticeService_Create(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notices := mocks.NewMockNoticeStore(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	svc := NewNoticeService(notices, files, pub)

	a, b := imageHeader("a.pdf", "application/pdf"), imageHeader("b.png", "image/png")
	gomock.InOrder(
		files.EXPECT().Save(ctx, "notices", a).Return("url-a", nil),
		files.EXPECT().Save(ctx, "notices", b).Return("url-b", nil),
	)
	notices.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	n, err := svc.Create(ctx, NoticeInput{Title: "Water cut", Description: "Sunday 9-12"}, []*multipart.FileHeader{a, b}, admin())
	require.NoError(t, err)
	assert.Equal(t, []string{"url-a", "url-b"}, n.Attachments)
}

func TestNoticeService_CreateLimitsAttachments(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewNoticeService(mocks.NewMockNoticeStore(ctrl), mocks.NewMockFileStore(ctrl), nil)

	files := make([]*multipart.FileHeader, 11)
	for i := range files {
		files[i] = imageHeader("f.png", "image/png")
	}
	_, err := svc.Create(context.Background(), NoticeInput{Title: "T", Description: "D"}, files, admin())
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNoticeService_UpdateAppendsAndCleansUp(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notices := mocks.NewMockNoticeStore(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	svc := NewNoticeService(notices, files, nil)
	id := primitive.NewObjectID()
	f := imageHeader("c.png", "image/png")

	notices.EXPECT().FindByID(ctx, id).Return(&models.Notice{ID: id, Attachments: []string{"url-a"}}, nil)
	files.EXPECT().Save(ctx, "notices", f).Return("url-c", nil)
	notices.EXPECT().Update(ctx, id, bson.M{"title": "New"}, []string{"url-c"}).
		Return(nil, models.ErrNotFound("Notice not found"))
	files.EXPECT().Remove(ctx, "url-c").Return(errors.New("ignored"))

	_, err := svc.Update(ctx, id, NoticeInput{Title: " New "}, []*multipart.FileHeader{f}, admin())
	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestNoticeService_UpdateLimitsTotalAttachments(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notices := mocks.NewMockNoticeStore(ctrl)
	svc := NewNoticeService(notices, mocks.NewMockFileStore(ctrl), nil)
	id := primitive.NewObjectID()

	held := make([]string, 9)
	for i := range held {
		held[i] = "url"
	}
	notices.EXPECT().FindByID(ctx, id).Return(&models.Notice{ID: id, Attachments: held}, nil)

	extra := []*multipart.FileHeader{imageHeader("x.png", "image/png"), imageHeader("y.png", "image/png")}
	_, err := svc.Update(ctx, id, NoticeInput{}, extra, admin())
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "At most 10 attachments are allowed", verr.Message)
}

func TestNoticeService_UpdateWithoutFilesSkipsLookup(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notices := mocks.NewMockNoticeStore(ctrl)
	svc := NewNoticeService(notices, mocks.NewMockFileStore(ctrl), nil)
	id := primitive.NewObjectID()

	notices.EXPECT().Update(ctx, id, bson.M{"category": "Events"}, []string{}).
		Return(&models.Notice{ID: id, Category: "Events"}, nil)

	n, err := svc.Update(ctx, id, NoticeInput{Category: "Events"}, nil, admin())
	require.NoError(t, err)
	assert.Equal(t, "Events", n.Category)
}

func TestNoticeService_ResidentCannotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewNoticeService(mocks.NewMockNoticeStore(ctrl), mocks.NewMockFileStore(ctrl), nil)
	var ferr *models.ForbiddenError
	require.ErrorAs(t, svc.Delete(context.Background(), primitive.NewObjectID(), resident()), &ferr)
}
