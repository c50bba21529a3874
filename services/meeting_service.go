package services

import (
	"context"
	"time"

	"societyhub-be/events"
	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MeetingService struct {
	store     MeetingStore
	publisher EventPublisher
}

func NewMeetingService(store MeetingStore, publisher EventPublisher) *MeetingService {
	return &MeetingService{store: store, publisher: publisher}
}

func (s *MeetingService) Create(ctx context.Context, m *models.Meeting, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	now := time.Now()
	m.ID = primitive.NilObjectID
	m.Poll = nil
	m.CreatedBy = actor.UserID
	m.CreatedAt, m.UpdatedAt = now, now
	return s.store.Create(ctx, m)
}

func (s *MeetingService) List(ctx context.Context) ([]models.Meeting, error) {
	return s.store.List(ctx)
}

func (s *MeetingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	return s.store.FindByID(ctx, id)
}

// Update changes the scheduling fields only; the poll has its own operations.
func (s *MeetingService) Update(ctx context.Context, id primitive.ObjectID, upd models.MeetingUpdate, actor models.Actor) (*models.Meeting, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, models.ErrValidation("Title cannot be empty")
	}
	if upd.Agenda != nil && *upd.Agenda == "" {
		return nil, models.ErrValidation("Agenda cannot be empty")
	}
	if upd.Location != nil && *upd.Location == "" {
		loc := models.DefaultMeetingLocation
		upd.Location = &loc
	}
	return s.store.Update(ctx, id, upd)
}

// Delete removes the meeting and, with it, its poll.
func (s *MeetingService) Delete(ctx context.Context, id primitive.ObjectID, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.publisher, events.Event{
		Type:    events.MeetingDeleted,
		Subject: id.Hex(),
		Actor:   actor.UserID.Hex(),
	})
	return nil
}
