package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/himeshnishant1/juspay-dashboard/libs/mailer"
	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
	"github.com/himeshnishant1/juspay-dashboard/libs/widgets"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	sessionCookieName        = "orderdash_session"
	sessionTokenDuration     = 30 * 24 * time.Hour
	sessionCleanupInterval   = time.Minute
	defaultSessionIdle       = 2 * time.Hour
	defaultSessionMaxCount   = 10000
	exportsDirName           = "exports"
	exportListLimit          = 50
	requestIDHeader          = "X-Request-ID"
	requestIDContextKey      = "requestID"
	sessionContextKey        = "dashboardSessionID"
	shutdownTimeout          = 10 * time.Second
	devCORSOriginLocalhost   = "http://localhost:5173"
	devCORSOriginLoopback    = "http://127.0.0.1:5173"
	corsMaxAge               = 12 * time.Hour
	trustedProxyLoopbackIPv4 = "127.0.0.1"
	trustedProxyLoopbackIPv6 = "::1"
)

type Config struct {
	Addr                string
	Env                 string
	DatabaseURL         string
	DataRoot            string
	PublicBaseURL       string
	AppSigningSecret    string
	CORSAllowedOrigins  []string
	ExportEmailTo       string
	ResendAPIKey        string
	MailerFromAddresses map[string]string
	DisplayTimezone     string
	DisplayLocation     *time.Location
	SessionIdleTimeout  time.Duration
	SessionMaxCount     int
}

type App struct {
	cfg *Config
	db  *sql.DB
	log *slog.Logger

	mailer    *mailer.Mailer
	catalog   *orders.Catalog
	dashboard *widgets.Dashboard
	sessions  *sessionStore
	exports   exportLog
	templates *pageTemplateRenderer

	// test hooks
	nowFunc         func() time.Time
	writeExportFile func(path string, data []byte) error
}

type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func validationError(err error) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "validation_error", Message: err.Error()}
}

func main() {
	if err := loadDotEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	catalog, err := orders.DefaultCatalog()
	if err != nil {
		panic(err)
	}
	dashboard, err := widgets.DefaultDashboard()
	if err != nil {
		panic(err)
	}

	var mailProvider mailer.Provider
	if cfg.ResendAPIKey != "" {
		mailProvider = mailer.NewResendProvider(cfg.ResendAPIKey)
	} else {
		mailProvider = mailer.NewLogProvider(logger)
	}
	logger.Info("mailer initialized", "provider", mailProvider.Name())

	app := &App{
		cfg:       cfg,
		log:       logger,
		mailer:    mailer.New(mailProvider, cfg.MailerFromAddresses[mailProvider.Name()]),
		catalog:   catalog,
		dashboard: dashboard,
		sessions:  newSessionStore(cfg.SessionIdleTimeout, cfg.SessionMaxCount),
		exports:   newMemoryExportLog(),
		templates: newPageTemplateRenderer(cfg.Env),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			panic(err)
		}
		app.db = db
		if err := app.runMigrations(ctx); err != nil {
			panic(err)
		}
		app.exports = newSQLExportLog(db)
	}

	if err := os.MkdirAll(filepath.Join(cfg.DataRoot, exportsDirName), 0o755); err != nil {
		panic(err)
	}

	app.startSessionCleanup(ctx, sessionCleanupInterval)

	logger.Info(
		"runtime configuration",
		"env", cfg.Env,
		"addr", cfg.Addr,
		"display_timezone", cfg.DisplayTimezone,
		"export_log", app.exports.Name(),
		"orders", catalog.Len(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		app.log.Info("starting gin API", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	app.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.log.Error("graceful shutdown failed", "error", err)
	}
}

func (a *App) newRouter() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies([]string{trustedProxyLoopbackIPv4, trustedProxyLoopbackIPv6}); err != nil {
		panic(err)
	}
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(a.loggingMiddleware())
	r.Use(a.corsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a.registerPageRoutes(r)

	api := r.Group("/api/v1")
	{
		api.GET("/orders", a.apiOrdersHandler)
		api.GET("/dashboard", a.apiDashboardHandler)
		api.GET("/exports", a.apiExportsHandler)

		session := api.Group("")
		session.Use(a.dashboardSession())
		{
			session.GET("/session/orders", a.apiSessionOrdersHandler)
			session.POST("/session/orders/intents", a.apiSessionIntentHandler)
			session.GET("/theme", a.apiThemeHandler)
			session.PUT("/theme", a.apiSetThemeHandler)
		}
	}

	return r
}

func (a *App) now() time.Time {
	now := time.Now()
	if a.nowFunc != nil {
		now = a.nowFunc()
	}
	if a.cfg != nil && a.cfg.DisplayLocation != nil {
		now = now.In(a.cfg.DisplayLocation)
	}
	return now
}

func loadConfig() (*Config, error) {
	secret := strings.TrimSpace(os.Getenv("APP_SIGNING_SECRET"))
	if len(secret) < 16 {
		return nil, fmt.Errorf("APP_SIGNING_SECRET must be at least 16 characters")
	}

	publicBase := strings.TrimRight(valueOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/")

	timezone := valueOrDefault("DISPLAY_TIMEZONE", "UTC")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q is not a known time zone", timezone)
	}

	idleTimeout := defaultSessionIdle
	if raw := strings.TrimSpace(os.Getenv("SESSION_IDLE_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be a duration like 30m or 2h")
		}
		if parsed < time.Minute {
			return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be at least 1m")
		}
		idleTimeout = parsed
	}

	maxSessions := defaultSessionMaxCount
	if raw := strings.TrimSpace(os.Getenv("SESSION_MAX_COUNT")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("SESSION_MAX_COUNT must be a positive integer")
		}
		maxSessions = parsed
	}

	cfg := &Config{
		Addr:               valueOrDefault("GIN_ADDR", ":8080"),
		Env:                valueOrDefault("APP_ENV", "development"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DataRoot:           valueOrDefault("DATA_ROOT", "/var/lib/orderdash"),
		PublicBaseURL:      publicBase,
		AppSigningSecret:   secret,
		CORSAllowedOrigins: splitCommaList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ExportEmailTo:      valueOrDefault("EXPORT_EMAIL_TO", "ops@orderdash.local"),
		ResendAPIKey:       strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		MailerFromAddresses: map[string]string{
			"resend": valueOrDefault("MAILER_FROM_ADDRESS_RESEND", "noreply@orderdash.app"),
			"log":    valueOrDefault("MAILER_FROM_ADDRESS_LOG", "noreply@orderdash.local"),
		},
		DisplayTimezone:    timezone,
		DisplayLocation:    location,
		SessionIdleTimeout: idleTimeout,
		SessionMaxCount:    maxSessions,
	}

	if cfg.DatabaseURL != "" && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		return nil, fmt.Errorf("DATABASE_URL must be a postgres:// URL")
	}

	return cfg, nil
}

func loadDotEnvFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), "\"")
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCommaList(raw string) []string {
	values := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimRight(strings.TrimSpace(part), "/"); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func (a *App) runMigrations(ctx context.Context) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return err
	}

	if _, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		var exists bool
		if err := a.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, file).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/" + file)
		if err != nil {
			return err
		}

		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, file); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		a.log.Info("applied migration", "file", file)
	}

	return nil
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Set(requestIDContextKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func (a *App) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(requestIDContextKey),
		)
	}
}

func (a *App) corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  a.isAllowedCORSOrigin,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

func (a *App) isAllowedCORSOrigin(origin string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" || a.cfg == nil {
		return false
	}
	if a.cfg.PublicBaseURL != "" && origin == a.cfg.PublicBaseURL {
		return true
	}
	for _, allowed := range a.cfg.CORSAllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	if !strings.EqualFold(a.cfg.Env, "development") {
		return false
	}
	return origin == devCORSOriginLocalhost || origin == devCORSOriginLoopback
}

func writeAPIError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Code, "message": apiErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
}
