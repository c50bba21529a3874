package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"societyhub-be/events"
	"societyhub-be/models"
	"societyhub-be/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type complaintFixture struct {
	svc        *ComplaintService
	complaints *mocks.MockComplaintStore
	users      *mocks.MockUserStore
	files      *mocks.MockFileStore
	publisher  *mocks.MockEventPublisher
}

func newComplaintFixture(t *testing.T) complaintFixture {
	ctrl := gomock.NewController(t)
	f := complaintFixture{
		complaints: mocks.NewMockComplaintStore(ctrl),
		users:      mocks.NewMockUserStore(ctrl),
		files:      mocks.NewMockFileStore(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
	}
	f.svc = NewComplaintService(f.complaints, f.users, f.files, f.publisher)
	return f
}

func imageHeader(name, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: name, Header: h, Size: 128}
}

func TestComplaintService_List(t *testing.T) {
	ctx := context.Background()
	f := newComplaintFixture(t)
	res := resident()

	f.complaints.EXPECT().List(ctx, (*primitive.ObjectID)(nil)).Return([]models.Complaint{{}, {}}, nil)
	f.complaints.EXPECT().List(ctx, &res.UserID).Return([]models.Complaint{{}}, nil)

	all, err := f.svc.List(ctx, admin())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.svc.List(ctx, res)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestComplaintService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("with image", func(t *testing.T) {
		f := newComplaintFixture(t)
		res := resident()
		img := imageHeader("tap.png", "image/png")

		f.users.EXPECT().FindByID(ctx, res.UserID).Return(&models.User{ID: res.UserID, ApartmentNumber: "A-101"}, nil)
		f.files.EXPECT().Save(ctx, "complaints", img).Return("http://minio/society-uploads/complaints/x.png", nil)
		f.complaints.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Complaint) error {
			c.ID = primitive.NewObjectID()
			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, evt events.Event) error {
			assert.Equal(t, events.ComplaintCreated, evt.Type)
			return nil
		})

		c, err := f.svc.Create(ctx, ComplaintInput{Title: " Leak ", Description: "Kitchen tap"}, img, res)
		require.NoError(t, err)
		assert.Equal(t, "Leak", c.Title)
		assert.Equal(t, models.Pending, c.Status)
		assert.Equal(t, "A-101", c.ApartmentNumber)
		require.NotNil(t, c.Image)
	})

	t.Run("rejects pdf", func(t *testing.T) {
		f := newComplaintFixture(t)
		res := resident()
		f.users.EXPECT().FindByID(ctx, res.UserID).Return(&models.User{ID: res.UserID}, nil)

		_, err := f.svc.Create(ctx, ComplaintInput{Title: "Leak", Description: "d"}, imageHeader("a.pdf", "application/pdf"), res)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("removes image when insert fails", func(t *testing.T) {
		f := newComplaintFixture(t)
		res := resident()
		img := imageHeader("tap.jpg", "image/jpeg")
		f.users.EXPECT().FindByID(ctx, res.UserID).Return(&models.User{ID: res.UserID}, nil)
		f.files.EXPECT().Save(ctx, "complaints", img).Return("url", nil)
		f.complaints.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("write failed"))
		f.files.EXPECT().Remove(ctx, "url").Return(nil)

		_, err := f.svc.Create(ctx, ComplaintInput{Title: "Leak", Description: "d"}, img, res)
		require.Error(t, err)
	})

	t.Run("admin cannot file", func(t *testing.T) {
		f := newComplaintFixture(t)
		_, err := f.svc.Create(ctx, ComplaintInput{Title: "Leak", Description: "d"}, nil, admin())
		var ferr *models.ForbiddenError
		require.ErrorAs(t, err, &ferr)
	})
}

func TestComplaintService_Review(t *testing.T) {
	ctx := context.Background()
	f := newComplaintFixture(t)
	id := primitive.NewObjectID()
	status := models.InProgress
	notes := "Plumber booked"

	f.complaints.EXPECT().Update(ctx, id, bson.M{"status": models.InProgress, "adminNotes": notes}).
		Return(&models.Complaint{ID: id, Status: models.InProgress}, nil)

	c, err := f.svc.Review(ctx, id, ComplaintReview{Status: &status, AdminNotes: &notes}, admin())
	require.NoError(t, err)
	assert.Equal(t, models.InProgress, c.Status)

	bad := models.ComplaintStatus("Closed")
	_, err = f.svc.Review(ctx, id, ComplaintReview{Status: &bad}, admin())
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComplaintService_EditAndDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	owner := resident()
	id := primitive.NewObjectID()
	oldImage := "http://minio/society-uploads/complaints/old.png"
	stored := &models.Complaint{ID: id, Resident: owner.UserID, Image: &oldImage}

	t.Run("other resident cannot edit", func(t *testing.T) {
		f := newComplaintFixture(t)
		f.complaints.EXPECT().FindByID(ctx, id).Return(stored, nil)
		title := "x"
		_, err := f.svc.Edit(ctx, id, ComplaintEdit{Title: &title}, nil, resident())
		var ferr *models.ForbiddenError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "Not authorized to edit this complaint", ferr.Message)
	})

	t.Run("new image replaces old", func(t *testing.T) {
		f := newComplaintFixture(t)
		img := imageHeader("new.png", "image/png")
		f.complaints.EXPECT().FindByID(ctx, id).Return(stored, nil)
		f.files.EXPECT().Save(ctx, "complaints", img).Return("new-url", nil)
		f.complaints.EXPECT().Update(ctx, id, bson.M{"image": "new-url"}).Return(&models.Complaint{ID: id}, nil)
		f.files.EXPECT().Remove(ctx, oldImage).Return(nil)

		_, err := f.svc.Edit(ctx, id, ComplaintEdit{}, img, owner)
		require.NoError(t, err)
	})

	t.Run("other resident cannot delete", func(t *testing.T) {
		f := newComplaintFixture(t)
		f.complaints.EXPECT().FindByID(ctx, id).Return(stored, nil)
		var ferr *models.ForbiddenError
		require.ErrorAs(t, f.svc.Delete(ctx, id, resident()), &ferr)
	})

	t.Run("owner deletes with image", func(t *testing.T) {
		f := newComplaintFixture(t)
		f.complaints.EXPECT().FindByID(ctx, id).Return(stored, nil)
		f.complaints.EXPECT().DeleteByID(ctx, id).Return(nil)
		f.files.EXPECT().Remove(ctx, oldImage).Return(errors.New("already gone"))

		require.NoError(t, f.svc.Delete(ctx, id, owner))
	})
}
