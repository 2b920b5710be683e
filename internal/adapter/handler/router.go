package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meet-agent/internal/adapter/dto/common"
	"github.com/johnquangdev/meet-agent/pkg/config"
)

const probeTimeout = 2 * time.Second

// Probe reports one integration's state for the health endpoint
type Probe func(ctx context.Context) string

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	chatHandler    *Chat
	calendar       *Calendar
	authHandler    *Auth
	notesHandler   *Notes
	storage        *Storage
	sessionAuth    echo.MiddlewareFunc
	requireSession echo.MiddlewareFunc
	probes         map[string]Probe
	sessionCount   func() int
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	chatHandler *Chat,
	calendarHandler *Calendar,
	authHandler *Auth,
	notesHandler *Notes,
	storageHandler *Storage,
	sessionAuth echo.MiddlewareFunc,
	requireSession echo.MiddlewareFunc,
	probes map[string]Probe,
	sessionCount func() int,
) *Router {
	return &Router{
		cfg:            cfg,
		chatHandler:    chatHandler,
		calendar:       calendarHandler,
		authHandler:    authHandler,
		notesHandler:   notesHandler,
		storage:        storageHandler,
		sessionAuth:    sessionAuth,
		requireSession: requireSession,
		probes:         probes,
		sessionCount:   sessionCount,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupSessionRoutes(v1)
	rt.setupChatRoutes(v1)
	rt.setupCalendarRoutes(v1)
	rt.setupNotesRoutes(v1)
}

func (rt *Router) setupSessionRoutes(g *echo.Group) {
	g.POST("/sessions", rt.chatHandler.CreateSession)
	g.DELETE("/sessions", rt.chatHandler.EndSession, rt.sessionAuth, rt.requireSession)
}

func (rt *Router) setupChatRoutes(g *echo.Group) {
	chatGroup := g.Group("/chat", rt.sessionAuth, rt.requireSession)

	chatGroup.POST("/transcript", rt.chatHandler.ProcessTranscript)
	chatGroup.POST("/audio", rt.chatHandler.ProcessAudio)
	chatGroup.POST("/messages", rt.chatHandler.SendMessage)
	chatGroup.GET("/messages", rt.chatHandler.GetMessages)
	chatGroup.GET("/analyses", rt.chatHandler.ListAnalyses)
	chatGroup.GET("/analyses/:id/transcript", rt.storage.TranscriptDownloadURL)
	chatGroup.DELETE("", rt.chatHandler.ClearChat)
}

func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	calendarGroup := g.Group("/calendar")

	// The consent flow runs in a browser, outside any conversation
	calendarGroup.GET("/connect", rt.authHandler.GoogleLogin)
	calendarGroup.GET("/callback", rt.authHandler.GoogleCallback)
	calendarGroup.GET("/status", rt.authHandler.Status)

	calendarGroup.POST("/events", rt.calendar.CreateEvent, rt.sessionAuth)
	calendarGroup.POST("/suggestions", rt.calendar.SuggestTimes, rt.sessionAuth)
}

func (rt *Router) setupNotesRoutes(g *echo.Group) {
	notesGroup := g.Group("/notes", rt.sessionAuth)

	notesGroup.POST("/pages", rt.notesHandler.CreatePage)
	notesGroup.POST("/tasks", rt.notesHandler.CreateTasks)
	notesGroup.PATCH("/tasks/:id", rt.notesHandler.UpdateTaskStatus)
}

// healthCheck returns health status. Disabled integrations do not degrade it.
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:       common.StatusOK,
		Environment:  rt.cfg.Server.Environment,
		Integrations: make(map[string]string, len(rt.probes)),
	}
	if rt.sessionCount != nil {
		resp.Sessions = rt.sessionCount()
	}

	for name, probe := range rt.probes {
		ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
		state := probe(ctx)
		cancel()

		resp.Integrations[name] = state
		if state == common.StatusDegraded {
			resp.Status = common.StatusDegraded
		}
	}

	code := http.StatusOK
	if resp.Status != common.StatusOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
