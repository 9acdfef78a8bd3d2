package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"takeoffs/internal/analyzer"
	_ "takeoffs/internal/analyzer/claude"
	_ "takeoffs/internal/analyzer/gemini"
	_ "takeoffs/internal/analyzer/openai"
	"takeoffs/internal/config"
	"takeoffs/internal/email/noop"
	"takeoffs/internal/email/ses"
	"takeoffs/internal/handler"
	"takeoffs/internal/port"
	"takeoffs/internal/repository/postgres"
	"takeoffs/internal/router"
	"takeoffs/internal/service"
	s3storage "takeoffs/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	blueprintRepo := postgres.NewBlueprintRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailer port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailer, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailer = noop.NewNoopSender()
	}

	// Initialize blueprint analyzer with fallback and merge composition
	blueprintAnalyzer, err := analyzer.Build(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize blueprint analyzer: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	projectSvc := service.NewProjectService(projectRepo)
	blueprintSvc := service.NewBlueprintService(blueprintRepo, projectRepo, s3Client, &cfg.S3)
	analysisSvc := service.NewAnalysisService(
		analysisRepo, blueprintRepo, projectRepo, userRepo, catalogRepo,
		s3Client, blueprintAnalyzer, emailer, cfg.Takeoff,
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	blueprintH := handler.NewBlueprintHandler(blueprintSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	catalogH := handler.NewCatalogHandler(catalogRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, userH, projectH, blueprintH, analysisH, catalogH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the analysis queue worker
	worker := service.NewAnalysisQueueWorker(analysisRepo, analysisSvc, service.AnalysisQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone

	return nil
}
