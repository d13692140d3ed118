package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/config"
	"github.com/grocerhub/grocer-api/internal/platform/mongodb"
	"github.com/grocerhub/grocer-api/internal/service/auth"
	"github.com/grocerhub/grocer-api/internal/store"
)

// application bundles the configured dependencies of the running server.
// Everything is constructed once in newApplication and wired explicitly;
// there is no global state besides the default slog logger.
type application struct {
	config *config.Config
	db     *mongodb.DB

	products  store.ProductStore
	employees store.EmployeeStore
	carts     store.CartStore
	orders    store.OrderStore

	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	errs       *shared.ErrorHandler
}

// newApplication connects to MongoDB, ensures the unique indexes the
// stores rely on, and builds every service. The context bounds startup.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	db, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	slog.Info("Database connection established", "database", cfg.Database.Name)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:     cfg,
		db:         db,
		products:   mongodb.NewProductStore(db),
		employees:  mongodb.NewEmployeeStore(db),
		carts:      mongodb.NewCartStore(db),
		orders:     mongodb.NewOrderStore(db),
		jwtService: jwtService,
		hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		errs:       shared.NewErrorHandler(cfg.API.DevMode),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.db.Close(ctx); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}
