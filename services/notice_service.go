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

type NoticeInput struct {
	Title       string
	Description string
	Category    string
}

type NoticeService struct {
	notices   NoticeStore
	files     FileStore
	publisher EventPublisher
}

func NewNoticeService(notices NoticeStore, files FileStore, publisher EventPublisher) *NoticeService {
	return &NoticeService{notices: notices, files: files, publisher: publisher}
}

func (s *NoticeService) List(ctx context.Context) ([]models.Notice, error) {
	return s.notices.List(ctx)
}

func (s *NoticeService) Get(ctx context.Context, id primitive.ObjectID) (*models.Notice, error) {
	return s.notices.FindByID(ctx, id)
}

func (s *NoticeService) Create(ctx context.Context, in NoticeInput, files []*multipart.FileHeader, actor models.Actor) (*models.Notice, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, models.ErrValidation("Title and description are required")
	}

	attachments, err := s.saveAll(ctx, 0, files)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	notice := &models.Notice{
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Attachments: attachments,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		s.removeAll(ctx, attachments)
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Type:    events.NoticeCreated,
		Subject: notice.ID.Hex(),
		Actor:   actor.UserID.Hex(),
		Data:    map[string]interface{}{"title": notice.Title, "category": notice.Category},
	})
	return notice, nil
}

// Update changes the non-empty fields and appends any new attachments.
func (s *NoticeService) Update(ctx context.Context, id primitive.ObjectID, in NoticeInput, files []*multipart.FileHeader, actor models.Actor) (*models.Notice, error) {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	set := bson.M{}
	if v := strings.TrimSpace(in.Title); v != "" {
		set["title"] = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		set["description"] = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		set["category"] = v
	}

	existing := 0
	if len(files) > 0 {
		current, err := s.notices.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		existing = len(current.Attachments)
	}
	attachments, err := s.saveAll(ctx, existing, files)
	if err != nil {
		return nil, err
	}
	notice, err := s.notices.Update(ctx, id, set, attachments)
	if err != nil {
		s.removeAll(ctx, attachments)
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) Delete(ctx context.Context, id primitive.ObjectID, actor models.Actor) error {
	if err := models.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	return s.notices.DeleteByID(ctx, id)
}

// saveAll uploads files for a notice that already holds existing attachments.
func (s *NoticeService) saveAll(ctx context.Context, existing int, files []*multipart.FileHeader) ([]string, error) {
	if existing+len(files) > storage.MaxNoticeFiles {
		return nil, models.ErrValidation("At most %d attachments are allowed", storage.MaxNoticeFiles)
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.files.Save(ctx, storage.NoticeAttachments, f)
		if err != nil {
			s.removeAll(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *NoticeService) removeAll(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.files.Remove(ctx, url); err != nil {
			slog.Warn("Failed to delete attachment", "url", url, "error", err)
		}
	}
}
