package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medtrack/emr/internal/config"
	"github.com/medtrack/emr/internal/domain/billing"
	"github.com/medtrack/emr/internal/domain/diagnostics"
	"github.com/medtrack/emr/internal/domain/encounter"
	"github.com/medtrack/emr/internal/domain/identity"
	"github.com/medtrack/emr/internal/domain/patient"
	"github.com/medtrack/emr/internal/domain/scheduling"
	"github.com/medtrack/emr/internal/platform/auth"
	"github.com/medtrack/emr/internal/platform/db"
	"github.com/medtrack/emr/internal/platform/middleware"
	"github.com/medtrack/emr/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emr-server",
		Short: "EMR API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the EMR API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with synthetic demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			doctors, _ := cmd.Flags().GetInt("doctors")
			seed, _ := cmd.Flags().GetInt64("seed")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			seedCfg := sandbox.DefaultSeedConfig()
			if patients > 0 {
				seedCfg.PatientCount = patients
			}
			if doctors > 0 {
				seedCfg.DoctorCount = doctors
			}
			seedCfg.Seed = seed

			seeder := sandbox.NewSeeder(seedCfg, sandbox.Repos{
				Users:        identity.NewUserRepoPG(pool),
				Patients:     patient.NewRepoPG(pool),
				Appointments: scheduling.NewRepoPG(pool),
				Visits:       encounter.NewRepoPG(pool),
				LabReports:   diagnostics.NewRepoPG(pool),
				Invoices:     billing.NewRepoPG(pool),
			})
			result, err := seeder.Run(ctx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			fmt.Printf("Seeded %d users, %d patients, %d appointments, %d visits, %d lab reports, %d invoices.\n",
				result.Users, result.Patients, result.Appointments, result.Visits, result.LabReports, result.Invoices)
			return nil
		},
	}
	cmd.Flags().Int("patients", 0, "Number of patients to generate")
	cmd.Flags().Int("doctors", 0, "Number of doctor accounts to generate")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible output")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	tokenCfg := auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: "emr-server",
		TTL:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.Audit(logger))

	// DB health check endpoint
	e.GET("/health", db.HealthHandler(pool))

	// API groups: the public group carries registration and login; everything
	// else requires a bearer token.
	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	protected := apiV1.Group("", auth.Middleware(tokenCfg))

	// Identity
	userRepo := identity.NewUserRepoPG(pool)
	identitySvc := identity.NewService(userRepo, tokenCfg)
	identityHandler := identity.NewHandler(identitySvc)
	identityHandler.RegisterRoutes(apiV1, protected)

	// Patients
	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(protected)

	// Appointments
	apptRepo := scheduling.NewRepoPG(pool)
	apptSvc := scheduling.NewService(apptRepo)
	apptHandler := scheduling.NewHandler(apptSvc)
	apptHandler.RegisterRoutes(protected)

	// Visits
	visitRepo := encounter.NewRepoPG(pool)
	visitSvc := encounter.NewService(visitRepo)
	visitHandler := encounter.NewHandler(visitSvc)
	visitHandler.RegisterRoutes(protected)

	// Lab reports
	labRepo := diagnostics.NewRepoPG(pool)
	labSvc := diagnostics.NewService(labRepo)
	labHandler := diagnostics.NewHandler(labSvc)
	labHandler.RegisterRoutes(protected)

	// Invoices
	invoiceRepo := billing.NewRepoPG(pool)
	invoiceSvc := billing.NewService(invoiceRepo)
	invoiceHandler := billing.NewHandler(invoiceSvc)
	invoiceHandler.RegisterRoutes(protected)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
