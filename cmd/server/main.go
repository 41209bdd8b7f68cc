package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lingodrill/internal/config"
	"lingodrill/internal/database"
	"lingodrill/internal/docstore"
	"lingodrill/internal/feedback"
	"lingodrill/internal/handlers"
	"lingodrill/internal/repository"
	"lingodrill/internal/security"
	"lingodrill/internal/service"
	"lingodrill/internal/speech"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Document store and session repository
	store := docstore.NewSQLStore(db, cfg.Namespace)
	sessionRepo := repository.NewSessionRepository(db)

	// Custom-token sign-in is only offered when a secret is configured
	var verifier *security.TokenVerifier
	if cfg.TokenSecret != "" {
		verifier = security.NewTokenVerifier(cfg.TokenSecret)
	}

	if cfg.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET is empty, form tokens are not secret across restarts")
	}
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(10, time.Minute)

	// Email is optional; without a from address the service stays disabled
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Printf("Warning: email service unavailable: %v", err)
		emailService = nil
	}

	// Initialize services
	authService := service.NewAuthService(sessionRepo, store, verifier, cfg.SessionDuration)
	profileService := service.NewProfileService(store)
	resultsService := service.NewResultsService(store)
	progressService := service.NewProgressService(store, emailService)

	// Speaking feedback comes from the configured endpoint, or canned
	// text when none is set
	var provider feedback.Provider
	if cfg.FeedbackEndpoint != "" && cfg.FeedbackAPIKey != "" {
		provider = feedback.NewHTTPProvider(cfg.FeedbackEndpoint, cfg.FeedbackAPIKey)
		log.Println("Speaking feedback: remote endpoint configured")
	} else {
		provider = &feedback.StaticProvider{Text: "Good effort! Keep practicing this prompt until the words come naturally."}
		log.Println("Speaking feedback: using canned responses")
	}

	// Generate curriculum audio and drop clips no lesson references
	synthesizer := speech.NewSynthesizer(filepath.Join(cfg.StaticFilesPath, "audio"))
	speech.EnsureCurriculumAudio(synthesizer)
	if removed, err := speech.CleanupOrphanedClips(synthesizer); err != nil {
		log.Printf("Warning: failed to clean up orphaned audio clips: %v", err)
	} else if removed > 0 {
		log.Printf("Removed %d orphaned audio clips", removed)
	}

	recordings := speech.NewRecordingStore(filepath.Join(cfg.StaticFilesPath, "recordings"))
	speakingService := service.NewSpeakingService(recordings, provider, resultsService)
	dictationService := service.NewDictationService(resultsService)

	googleOAuth := handlers.NewGoogleOAuth(&oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}, cfg.OAuthRedirectBaseURL)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, csrf, limiter)
	authHandler := handlers.NewAuthHandler(authService, templates, googleOAuth)
	profileHandler := handlers.NewProfileHandler(profileService, emailService, templates, csrf)
	homeHandler := handlers.NewHomeHandler(progressService, templates)
	speakingHandler := handlers.NewSpeakingHandler(speakingService, cfg.UploadMaxSize)
	dictationHandler := handlers.NewDictationHandler(dictationService)
	progressHandler := handlers.NewProgressHandler(progressService)
	vocabularyHandler := handlers.NewVocabularyHandler()

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Pages
	mux.HandleFunc("GET /", middleware.WithSession(authHandler.Home))
	mux.HandleFunc("GET /login", middleware.WithSession(authHandler.ShowLogin))
	mux.HandleFunc("POST /signin", middleware.RateLimit(authHandler.SignIn))
	mux.HandleFunc("POST /signout", authHandler.SignOut)
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)
	mux.HandleFunc("GET /setup", middleware.RequireIdentity(profileHandler.ShowSetup))
	mux.HandleFunc("POST /setup", middleware.RequireIdentity(middleware.CSRFProtect(profileHandler.CreateProfile)))
	mux.HandleFunc("GET /home", middleware.WithSession(homeHandler.ShowHome))

	// JSON API
	mux.HandleFunc("GET /api/session", middleware.WithSession(authHandler.SessionState))
	mux.HandleFunc("GET /api/vocabulary", vocabularyHandler.GetVocabulary)
	mux.HandleFunc("GET /api/progress", middleware.RequireReady(progressHandler.GetProgress))
	mux.HandleFunc("GET /api/progress/stream", middleware.RequireReady(progressHandler.StreamProgress))
	mux.HandleFunc("POST /api/lessons/{lessonID}/complete", middleware.RequireReady(progressHandler.CompleteLesson))
	mux.HandleFunc("POST /api/dictation/check", middleware.RequireReady(dictationHandler.CheckDictation))
	mux.HandleFunc("POST /api/speaking/feedback", middleware.RequireReady(speakingHandler.SubmitSpeaking))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Closing the store ends any open progress streams
	if err := store.Close(); err != nil {
		log.Printf("Error closing document store: %v", err)
	}

	log.Println("Server stopped")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	baseTemplate := filepath.Join(templatesPath, "base.tmpl")

	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "app/*.tmpl"),
	}

	var files []string
	files = append(files, baseTemplate)

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		count, err := authService.CleanupExpiredSessions()
		if err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
			continue
		}
		if count > 0 {
			log.Printf("Cleaned up %d expired sessions", count)
		}
	}
}
