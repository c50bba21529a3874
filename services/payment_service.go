package services

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"societyhub-be/models"
	"societyhub-be/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentInput struct {
	Resident    primitive.ObjectID
	Amount      float64
	DueDate     *time.Time
	Description string
}

// PaymentSubmission is a resident's self-reported maintenance payment.
type PaymentSubmission struct {
	Month       string
	ReferenceID string
	Description string
	DueDate     *time.Time
}

type PaymentService struct {
	payments PaymentStore
	files    FileStore
}

func NewPaymentService(payments PaymentStore, files FileStore) *PaymentService {
	return &PaymentService{payments: payments, files: files}
}

// List returns all payments to admins and only their own to residents,
// latest due date first.
func (s *PaymentService) List(ctx context.Context, actor models.Actor) ([]models.Payment, error) {
	if actor.Role == models.RoleAdmin {
		return s.payments.List(ctx, nil, "dueDate")
	}
	return s.payments.List(ctx, &actor.UserID, "dueDate")
}

// History is the resident's own submissions, newest first.
func (s *PaymentService) History(ctx context.Context, actor models.Actor) ([]models.Payment, error) {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return nil, err
	}
	return s.payments.List(ctx, &actor.UserID, "createdAt")
}

func (s *PaymentService) All(ctx context.Context, actor models.Actor) ([]models.Payment, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.payments.List(ctx, nil, "createdAt")
}

func (s *PaymentService) Create(ctx context.Context, in PaymentInput, actor models.Actor) (*models.Payment, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if in.Resident.IsZero() {
		return nil, models.ErrValidation("Resident is required")
	}
	if in.Amount < 0 {
		return nil, models.ErrValidation("Amount must not be negative")
	}
	if in.DueDate == nil {
		return nil, models.ErrValidation("Due date is required")
	}

	now := time.Now()
	payment := &models.Payment{
		Resident:    in.Resident,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
		Status:      models.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Submit records a resident's payment of the standard maintenance amount
// together with an optional proof image.
func (s *PaymentService) Submit(ctx context.Context, in PaymentSubmission, proof *multipart.FileHeader, actor models.Actor) (*models.Payment, error) {
	if err := models.RequireRole(actor.Role, models.RoleResident); err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &models.Payment{
		Resident:    actor.UserID,
		Amount:      models.DefaultMaintenanceAmount,
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
		Status:      models.PaymentPending,
		Month:       strings.TrimSpace(in.Month),
		ReferenceID: strings.TrimSpace(in.ReferenceID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if proof != nil {
		if err := storage.ValidateImage(proof); err != nil {
			return nil, err
		}
		url, err := s.files.Save(ctx, storage.PaymentProofs, proof)
		if err != nil {
			return nil, err
		}
		payment.ProofImage = &url
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		if payment.ProofImage != nil {
			if rmErr := s.files.Remove(ctx, *payment.ProofImage); rmErr != nil {
				slog.Warn("Failed to delete proof image", "url", *payment.ProofImage, "error", rmErr)
			}
		}
		return nil, err
	}
	return payment, nil
}

// UpdateStatus records who changed the status; paidAt tracks the Paid state.
func (s *PaymentService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, actor models.Actor) (*models.Payment, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, models.ErrValidation("Status must be Pending, Paid or Unpaid")
	}

	now := time.Now()
	set := bson.M{"status": status, "updatedBy": actor.UserID, "updatedAt": now}
	update := bson.M{"$set": set}
	if status == models.PaymentPaid {
		set["paidAt"] = now
	} else {
		update["$unset"] = bson.M{"paidAt": ""}
	}
	return s.payments.Update(ctx, id, update)
}
