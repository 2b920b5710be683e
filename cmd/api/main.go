package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/meet-agent/docs"
	"github.com/johnquangdev/meet-agent/internal/adapter/dto/common"
	"github.com/johnquangdev/meet-agent/internal/adapter/handler"
	"github.com/johnquangdev/meet-agent/internal/adapter/repository"
	"github.com/johnquangdev/meet-agent/internal/domain/repositories"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/cache"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/database"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/calendar"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/notion"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/oauth"
	httpmw "github.com/johnquangdev/meet-agent/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/storage"
	"github.com/johnquangdev/meet-agent/internal/usecase/analysis"
	"github.com/johnquangdev/meet-agent/internal/usecase/auth"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
	"github.com/johnquangdev/meet-agent/internal/usecase/meeting"
	"github.com/johnquangdev/meet-agent/internal/usecase/notes"
	"github.com/johnquangdev/meet-agent/internal/usecase/schedule"
	pkgai "github.com/johnquangdev/meet-agent/pkg/ai"
	"github.com/johnquangdev/meet-agent/pkg/config"
	"github.com/johnquangdev/meet-agent/pkg/jwt"
	"github.com/johnquangdev/meet-agent/pkg/metrics"
	sessionmw "github.com/johnquangdev/meet-agent/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/meet-agent/pkg/validator"
)

const evictEvery = time.Minute

// @title           Meet Agent API
// @version         1.0
// @description     Conversational meeting assistant: transcript analysis, notes pages and calendar scheduling

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	logger.Info("🔧 Initializing dependencies...")
	probes := make(map[string]handler.Probe)
	appMetrics := metrics.New()
	e.Use(appMetrics.Middleware())

	// Database archive (optional)
	var db *gorm.DB
	var archive repositories.AnalysisRepository
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db, logger); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		} else {
			logger.Info("🔄 Skipping migrations; run scripts/migrate.go to manage the schema")
		}
		archive = repository.NewAnalysisRepository(db)
		if sqlDB, err := db.DB(); err == nil {
			appMetrics.RegisterDB(sqlDB, cfg.Database.Name)
		}
		probes["database"] = func(ctx context.Context) string {
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(ctx) != nil {
				return common.StatusDegraded
			}
			return common.StatusOK
		}
	} else {
		probes["database"] = disabled
	}

	// Key-value store: Redis when enabled, in-process otherwise
	var kv oauth.Store
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		kv = cache.NewRedisStore(redisClient, logger)
		probes["redis"] = func(ctx context.Context) string {
			if redisClient.Ping(ctx).Err() != nil {
				return common.StatusDegraded
			}
			return common.StatusOK
		}
	} else {
		memory := cache.NewMemoryStore()
		defer memory.Close()
		kv = memory
		probes["redis"] = disabled
	}

	// Object storage (optional)
	var objects meeting.ObjectStore
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objects = minioClient
		probes["storage"] = func(ctx context.Context) string {
			if minioClient.Ping(ctx) != nil {
				return common.StatusDegraded
			}
			return common.StatusOK
		}
	} else {
		probes["storage"] = disabled
	}

	// Language models
	invoker := pkgai.NewDefaultInvoker(&cfg.LLM, logger).WithCache(kv, cfg.LLM.CacheTTL)
	if len(invoker.Strategies()) == 0 {
		logger.Warn("⚠️ No language model configured; analyses will be empty")
	}
	analyzer := analysis.NewAnalyzer(invoker, logger)

	var transcriber meeting.Transcriber
	if asm := pkgai.NewAssemblyAIClient(&cfg.Assembly); asm != nil {
		transcriber = asm
		probes["transcription"] = configured
	} else {
		probes["transcription"] = disabled
	}

	// Notes workspace (optional)
	var notesClient notes.Client
	var sessionNotes chat.NotesService
	notesParent := notion.DefaultParent(&cfg.Notion)
	if cfg.Notion.Token != "" {
		client := notion.NewClient(&cfg.Notion, logger)
		notesClient = client
		if cfg.NotionEnabled() {
			sessionNotes = client
		}
		probes["notion"] = configured
	} else {
		probes["notion"] = disabled
	}

	// Calendar (optional, connected by refresh token or consent flow)
	var calendarBackend schedule.Calendar
	var connectable auth.Connectable
	var provider auth.Provider
	if cfg.CalendarEnabled() {
		calendarClient := calendar.NewClient(&cfg.Calendar, logger)
		calendarBackend = calendarClient
		connectable = calendarClient
		provider = oauth.NewGoogleProvider(&cfg.Calendar)
		probes["calendar"] = func(context.Context) string {
			if !calendarClient.Connected() {
				return common.StatusDisconnected
			}
			return common.StatusOK
		}
	} else {
		probes["calendar"] = disabled
	}

	connector := auth.NewCalendarConnector(provider, oauth.NewStateManager(kv), connectable, logger)
	if connector.ConnectStored(cfg.Calendar.RefreshToken) {
		logger.Info("📅 Calendar connected from stored refresh token")
	}

	scheduleService := schedule.NewService(calendarBackend, &cfg.Calendar, logger)
	notesService := notes.NewService(notesClient, notesParent, cfg.Notion.TasksDBID, logger)

	rules := chat.RulesFromConfig(cfg.Chat)
	sessions := chat.NewManager(func() *chat.Session {
		return chat.NewSession(chat.Options{
			Analyzer:    analyzer,
			Invoker:     invoker,
			Notes:       sessionNotes,
			NotesParent: notesParent,
			Rules:       rules,
			Logger:      logger,
		})
	}, cfg.Chat.SessionIdleTTL, logger)

	meetingService := meeting.NewService(meeting.Options{
		Archive:     archive,
		Storage:     objects,
		Transcriber: transcriber,
		Scheduler:   scheduleService,
		Notes:       sessionNotes,
		NotesParent: notesParent,
		AutoNotes:   cfg.Notion.AutoPage,
		Observer:    appMetrics,
		Logger:      logger,
	})

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Handlers and routes
	chatHandler := handler.NewChatHandler(sessions, meetingService, tokens, cfg.Server.MaxUploadBytes, cfg.Server.MaxAudioBytes, logger)
	calendarHandler := handler.NewCalendarHandler(scheduleService, logger)
	authHandler := handler.NewAuth(connector, logger)
	notesHandler := handler.NewNotesHandler(notesService, logger)
	storageHandler := handler.NewStorageHandler(meetingService, logger)

	router := handler.NewRouter(
		cfg,
		chatHandler,
		calendarHandler,
		authHandler,
		notesHandler,
		storageHandler,
		httpmw.SessionAuth(tokens),
		sessionmw.RequireSession(sessions),
		probes,
		sessions.Len,
	)
	router.Setup(e)
	appMetrics.RegisterSessionGauge(sessions.Len)
	e.GET("/metrics", echo.WrapHandler(appMetrics.Handler()))

	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()
	go sessions.Run(runCtx, evictEvery)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.Strings("llm_strategies", invoker.Strategies()),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")
	stopRun()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}
	if err := meetingService.Wait(ctx); err != nil {
		logger.Warn("⚠️ Archive jobs still running at shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}

func disabled(context.Context) string { return common.StatusDisabled }

func configured(context.Context) string { return common.StatusOK }
