package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
	employeePostgres "github.com/frahmantamala/permit-management/internal/employee/postgres"
	"github.com/frahmantamala/permit-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/permit-management/internal/notification/postgres"
	"github.com/frahmantamala/permit-management/internal/notification/whatsapp"
	"github.com/frahmantamala/permit-management/internal/permit"
	permitPostgres "github.com/frahmantamala/permit-management/internal/permit/postgres"
	"github.com/frahmantamala/permit-management/internal/transport"
	"github.com/frahmantamala/permit-management/internal/transport/rest"
	"github.com/frahmantamala/permit-management/internal/user"
	userPostgres "github.com/frahmantamala/permit-management/internal/user/postgres"
	"github.com/frahmantamala/permit-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	GormDB     *gorm.DB
	Router     *chi.Mux
	Dispatcher *notification.Dispatcher
	Logger     *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		// drain in-flight notification deliveries before dropping the DB
		deps.Dispatcher.Close()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	// repositories
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	permitRepo := permitPostgres.NewPermitRepository(gormDB)
	notificationRepo := notificationPostgres.NewRepository(gormDB, log)
	userRepo := userPostgres.NewRepository(db, log)

	// event bus and notification side-channel
	bus := events.NewEventBus(log)
	gateway := whatsapp.NewClient(
		config.Notification.GatewayURL,
		config.Notification.APIKey,
		config.Notification.SendTimeout,
		log,
	)
	dispatcher := notification.NewDispatcher(notificationRepo, gateway, config.Notification, log)

	// services
	employeeService := employee.NewService(employeeRepo, log)
	permitService := permit.NewService(permitRepo, employeeService, bus, log)

	notification.NewEventHandler(dispatcher, permitService, employeeService, log).RegisterHandlers(bus)

	// handlers
	base := transport.NewBaseHandler(log)
	policy := user.NewPermissionPolicy(userRepo, log)
	permitHandler := permit.NewHandler(base, permitService, policy, &notificationReader{repo: notificationRepo})
	employeeHandler := employee.NewHandler(base, employeeService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, permitHandler, employeeHandler, config.Server.AllowedOrigins, log)

	return &Dependencies{
		Config:     config,
		Logger:     log,
		DB:         db,
		GormDB:     gormDB,
		Router:     router,
		Dispatcher: dispatcher,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// notificationReader adapts the notification repository to the audit view
// the permit detail endpoint embeds.
type notificationReader struct {
	repo notification.Repository
}

func (a *notificationReader) ListForPermit(permitID int64) ([]permit.NotificationRecord, error) {
	rows, err := a.repo.ListByPermitID(permitID)
	if err != nil {
		return nil, err
	}

	records := make([]permit.NotificationRecord, len(rows))
	for i, n := range rows {
		records[i] = permit.NotificationRecord{
			ID:             n.ID,
			RecipientPhone: n.RecipientPhone,
			Type:           n.Type,
			Status:         n.Status,
			SentAt:         n.SentAt,
			ErrorMessage:   n.ErrorMessage,
			CreatedAt:      n.CreatedAt,
		}
	}
	return records, nil
}
