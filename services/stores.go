// Package services holds the request-independent logic behind every route.
package services

import (
	"context"
	"mime/multipart"

	"societyhub-be/events"
	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=stores.go -destination=mocks/mock_stores.go -package=mocks

// PollStore is the slice of the meeting repository the poll service needs.
// Every write is a single-document atomic update.
type PollStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error)
	ReplacePoll(ctx context.Context, id primitive.ObjectID, poll *models.Poll) error
	RemovePoll(ctx context.Context, id primitive.ObjectID) error
	UpsertBallot(ctx context.Context, id, revision primitive.ObjectID, ballot models.Ballot) error
}

type MeetingStore interface {
	Create(ctx context.Context, m *models.Meeting) error
	List(ctx context.Context) ([]models.Meeting, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.MeetingUpdate) (*models.Meeting, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DeleteByEmails(ctx context.Context, emails []string) (int64, error)
}

type ComplaintStore interface {
	Create(ctx context.Context, c *models.Complaint) error
	List(ctx context.Context, resident *primitive.ObjectID) ([]models.Complaint, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Complaint, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type NoticeStore interface {
	Create(ctx context.Context, n *models.Notice) error
	List(ctx context.Context) ([]models.Notice, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notice, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M, attachments []string) (*models.Notice, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	List(ctx context.Context, resident *primitive.ObjectID, sortField string) ([]models.Payment, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Payment, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, user primitive.ObjectID) ([]models.Notification, error)
}

// FileStore keeps uploaded files; storage.MinioStore implements it.
type FileStore interface {
	Save(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, url string) error
}

// EventPublisher is satisfied by events.KafkaPublisher and events.NopPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}
