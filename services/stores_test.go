package services

import (
	"societyhub-be/events"
	"societyhub-be/repositories"
	"societyhub-be/storage"
)

var (
	_ PollStore         = (*repositories.MeetingRepository)(nil)
	_ MeetingStore      = (*repositories.MeetingRepository)(nil)
	_ UserStore         = (*repositories.UserRepository)(nil)
	_ ComplaintStore    = (*repositories.ComplaintRepository)(nil)
	_ NoticeStore       = (*repositories.NoticeRepository)(nil)
	_ PaymentStore      = (*repositories.PaymentRepository)(nil)
	_ NotificationStore = (*repositories.NotificationRepository)(nil)
	_ FileStore         = (*storage.MinioStore)(nil)
	_ EventPublisher    = (*events.KafkaPublisher)(nil)
	_ EventPublisher    = events.NopPublisher{}
)
