package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"societyhub-be/config"
	"societyhub-be/models"
	"societyhub-be/repositories"
	"societyhub-be/services"
	"societyhub-be/utils"

	"github.com/spf13/cobra"
)

var sampleAccounts = []services.SignupInput{
	{Name: "Admin User", Email: "admin@site.com", Password: "admin123", Role: models.RoleAdmin},
	{Name: "Resident User", Email: "resident@site.com", Password: "resident123", Role: models.RoleResident, ApartmentNumber: "A-101"},
}

func newSeedCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Recreate the sample admin and resident accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			db, err := config.ConnectDB(c.Mongo)
			if err != nil {
				return err
			}
			defer config.DisconnectDB(context.Background())

			if err := models.EnsureIndexes(db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			auth := services.NewAuthService(
				repositories.NewUserRepository(db),
				utils.NewTokenManager(c.JWT.Secret, c.JWT.ExpiresIn),
				c.JWT.BcryptCost,
			)
			created, err := auth.Seed(ctx, sampleAccounts)
			if err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
			for _, u := range created {
				slog.Info("Seeded user", "email", u.Email, "role", u.Role)
			}
			return nil
		},
	}
}
