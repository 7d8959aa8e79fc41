package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/internal/services"
	"github.com/recipe-app/api/pkg/config"
	"github.com/recipe-app/api/pkg/database"
	"github.com/recipe-app/api/pkg/logger"
)

// execute runs the management CLI and returns the process exit code.
func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Recipe API management commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newCreateSuperuserCmd(), newDeleteUserCmd())
	return root
}

// withDB loads configuration, sets up logging and opens the database for a single command.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Open(ctx, database.Options{
		Driver:     cfg.DatabaseDriver,
		DSN:        cfg.DatabaseURL,
		MaxRetries: 3,
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	return fn(ctx, cfg, db)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(_ context.Context, _ *config.Config, db *gorm.DB) error {
				if err := repository.AutoMigrate(db); err != nil {
					logger.L().Error("migration failed", zap.Error(err))
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations completed")
				return nil
			})
		},
	}
}

func newCreateSuperuserCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff account with superuser rights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SUPERUSER_PASSWORD")
			}
			return withDB(cmd, func(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
				auth := services.NewAuthService(repository.NewUserRepository(db), []byte(cfg.JWTSecret), cfg.TokenTTL)
				u, err := auth.CreateSuperuser(ctx, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "superuser %s created (id %s)\n", u.Email, u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (defaults to $SUPERUSER_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newDeleteUserCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "deleteuser",
		Short: "Delete an account together with its tags, ingredients and recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(ctx context.Context, _ *config.Config, db *gorm.DB) error {
				normalized, err := services.NormalizeEmail(email)
				if err != nil {
					return err
				}
				users := repository.NewUserRepository(db)
				var u models.User
				if err := users.GetByEmail(ctx, normalized, &u); err != nil {
					return err
				}
				if err := users.DeleteCascade(ctx, u.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s deleted\n", u.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
