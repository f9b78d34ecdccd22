// Command studioctl runs schema migrations and seeds users outside the
// HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"paxala/internal/config"
	"paxala/internal/database"
	"paxala/internal/logging"
	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "studioctl",
		Short:         "Studio API maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), createUserCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Bring the schema up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cfg.Environment)
			defer func() { _ = log.Sync() }()

			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.Prepare(cfg, db); err != nil {
				return err
			}
			log.Info("schema up to date", zap.String("driver", cfg.DBDriver))
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.DBDriver != database.DriverPostgres {
				return fmt.Errorf("migrate down needs DB_DRIVER=postgres, got %q", cfg.DBDriver)
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return database.MigrateDown(cfg, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func createUserCmd() *cobra.Command {
	var in service.CreateUserInput
	var role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user, typically the first ADMIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cfg.Environment)
			defer func() { _ = log.Sync() }()

			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			in.Role = model.Role(role)
			user, err := service.NewUserService(repository.NewUserRepository(db)).Create(ctx, in)
			if err != nil {
				return err
			}
			log.Info("user created",
				zap.String("user_id", user.ID.String()),
				zap.String("email", user.Email),
				zap.String("role", string(user.Role)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleAdmin), "ADMIN, STAFF or CLIENT")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
