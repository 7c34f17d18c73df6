// Package bootstrap wires configuration, storage, repositories and services
// into a ready-to-use dependency set.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/campusgate/exitpass/internal/app/repositories"
	"github.com/campusgate/exitpass/internal/app/services"
	"github.com/campusgate/exitpass/internal/config"
	"github.com/campusgate/exitpass/internal/pkg/logger"
	"github.com/campusgate/exitpass/internal/storage"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config *config.Config
	Store  storage.Store

	StudentRepo *repositories.StudentRepository
	PassRepo    *repositories.PassRequestRepository

	AuthService *services.AuthService
	PassService *services.PassService
}

// Setup loads configuration, configures logging, opens the store and
// constructs the repositories and services.
func Setup(ctx context.Context, configPath string) (*Dependencies, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	studentRepo := repositories.NewStudentRepository(store)
	passRepo := repositories.NewPassRequestRepository(store, studentRepo)

	authService, err := services.NewAuthService(ctx, store, studentRepo, cfg.Admin.ID, cfg.Admin.Password)
	if err != nil {
		store.Close()
		return nil, err
	}
	passService := services.NewPassService(passRepo, studentRepo, cfg.QR.Size)

	return &Dependencies{
		Config:      cfg,
		Store:       store,
		StudentRepo: studentRepo,
		PassRepo:    passRepo,
		AuthService: authService,
		PassService: passService,
	}, nil
}

// Close releases the underlying storage.
func (d *Dependencies) Close() error {
	return d.Store.Close()
}
