package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"societyhub-be/config"
	"societyhub-be/controllers"
	"societyhub-be/events"
	"societyhub-be/middlewares"
	"societyhub-be/models"
	"societyhub-be/repositories"
	"societyhub-be/routes"
	"societyhub-be/services"
	"societyhub-be/storage"
	"societyhub-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg())
		},
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		slog.Info("KAFKA_BROKERS not set, domain events are dropped")
		return events.NopPublisher{}
	}
	slog.Info("Publishing domain events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.DisconnectDB(context.Background()); err != nil {
			slog.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	if err := models.EnsureIndexes(db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	files, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		return err
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	users := repositories.NewUserRepository(db)
	meetings := repositories.NewMeetingRepository(db)

	handlers := routes.Handlers{
		Auth:     controllers.NewAuthController(services.NewAuthService(users, tokens, cfg.JWT.BcryptCost)),
		Meetings: controllers.NewMeetingController(services.NewMeetingService(meetings, publisher)),
		Polls:    controllers.NewPollController(services.NewPollService(meetings, publisher)),
		Complaints: controllers.NewComplaintController(services.NewComplaintService(
			repositories.NewComplaintRepository(db), users, files, publisher)),
		Notices: controllers.NewNoticeController(services.NewNoticeService(
			repositories.NewNoticeRepository(db), files, publisher)),
		Payments: controllers.NewPaymentController(services.NewPaymentService(
			repositories.NewPaymentRepository(db), files)),
		Notifications: controllers.NewNotificationController(services.NewNotificationService(
			repositories.NewNotificationRepository(db))),
	}
	router := routes.SetupRouter(handlers, routes.Options{
		Tokens:           tokens,
		ComplaintLimiter: middlewares.ComplaintRateLimiter(rdb, cfg.Complaint.QueuePrefix, cfg.Complaint.DailyLimit),
		Production:       cfg.IsProduction(),
		FrontendURL:      cfg.FrontendURL,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	slog.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
	return nil
}
