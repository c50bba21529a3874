package services

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"societyhub-be/events"
	"societyhub-be/models"
	"societyhub-be/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ComplaintInput struct {
	Title       string
	Description string
}

// ComplaintReview is the admin's triage of a complaint; nil fields are left alone.
type ComplaintReview struct {
	Status     *models.ComplaintStatus
	AssignedTo *primitive.ObjectID
	AdminNotes *string
}

// ComplaintEdit is the owner's change to their complaint; nil fields are left alone.
type ComplaintEdit struct {
	Title       *string
	Description *string
}

type ComplaintService struct {
	complaints ComplaintStore
	users      UserStore
	files      FileStore
	publisher  EventPublisher
}

func NewComplaintService(complaints ComplaintStore, users UserStore, files FileStore, publisher EventPublisher) *ComplaintService {
	return &ComplaintService{complaints: complaints, users: users, files: files, publisher: publisher}
}

// List returns every complaint to admins and only their own to residents.
func (s *ComplaintService) List(ctx context.Context, actor models.Actor) ([]models.Complaint, error) {
	if actor.Role == models.RoleAdmin {
		return s.complaints.List(ctx, nil)
	}
	return s.complaints.List(ctx, &actor.UserID)
}

func (s *ComplaintService) Create(ctx context.Context, in ComplaintInput, image *multipart.FileHeader, actor models.Actor) (*models.Complaint, error) {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, models.ErrValidation("Title and description are required")
	}

	resident, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	complaint := &models.Complaint{
		Title:           in.Title,
		Description:     in.Description,
		Status:          models.Pending,
		Resident:        resident.ID,
		ApartmentNumber: resident.ApartmentNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		complaint.Image = &url
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		if complaint.Image != nil {
			s.removeFile(ctx, *complaint.Image)
		}
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Type:    events.ComplaintCreated,
		Subject: complaint.ID.Hex(),
		Actor:   actor.UserID.Hex(),
		Data: map[string]interface{}{
			"title":           complaint.Title,
			"apartmentNumber": complaint.ApartmentNumber,
		},
	})
	return complaint, nil
}

// Review lets an admin change status, assignee and notes.
func (s *ComplaintService) Review(ctx context.Context, id primitive.ObjectID, in ComplaintReview, actor models.Actor) (*models.Complaint, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, models.ErrValidation("Status must be Pending, In Progress or Resolved")
		}
		set["status"] = *in.Status
	}
	if in.AssignedTo != nil {
		set["assignedTo"] = *in.AssignedTo
	}
	if in.AdminNotes != nil {
		set["adminNotes"] = *in.AdminNotes
	}
	return s.complaints.Update(ctx, id, set)
}

// Edit lets the resident who filed a complaint change it. A new image
// replaces the stored one.
func (s *ComplaintService) Edit(ctx context.Context, id primitive.ObjectID, in ComplaintEdit, image *multipart.FileHeader, actor models.Actor) (*models.Complaint, error) {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return nil, err
	}
	complaint, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint.Resident != actor.UserID {
		return nil, models.ErrForbidden("Not authorized to edit this complaint")
	}

	set := bson.M{}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		set["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		set["description"] = strings.TrimSpace(*in.Description)
	}
	var newImage string
	if image != nil {
		if newImage, err = s.saveImage(ctx, image); err != nil {
			return nil, err
		}
		set["image"] = newImage
	}

	updated, err := s.complaints.Update(ctx, id, set)
	if err != nil {
		if newImage != "" {
			s.removeFile(ctx, newImage)
		}
		return nil, err
	}
	if newImage != "" && complaint.Image != nil {
		s.removeFile(ctx, *complaint.Image)
	}
	return updated, nil
}

// Delete removes the resident's own complaint together with its image.
func (s *ComplaintService) Delete(ctx context.Context, id primitive.ObjectID, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return err
	}
	complaint, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if complaint.Resident != actor.UserID {
		return models.ErrForbidden("Not authorized to delete this complaint")
	}
	if err := s.complaints.DeleteByID(ctx, id); err != nil {
		return err
	}
	if complaint.Image != nil {
		s.removeFile(ctx, *complaint.Image)
	}
	return nil
}

func (s *ComplaintService) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if err := storage.ValidateImage(image); err != nil {
		return "", err
	}
	return s.files.Save(ctx, storage.ComplaintImages, image)
}

func (s *ComplaintService) removeFile(ctx context.Context, url string) {
	if err := s.files.Remove(ctx, url); err != nil {
		slog.Warn("Failed to delete image", "url", url, "error", err)
	}
}
