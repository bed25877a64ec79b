package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/richtext"
	"github.com/mrlokans/richclient/internal/security"
	"github.com/mrlokans/richclient/internal/session"
	"github.com/mrlokans/richclient/internal/store"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Logger         *zap.Logger
	SessionDB      Pinger
	SessionManager *session.Manager
	Registry       *store.Registry

	// CSRFSecret enables CSRF protection when non-empty.
	CSRFSecret    []byte
	SecureCookies bool

	TemplatesPath  string
	StaticPath     string
	TruncateLength int
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = store.NewRegistry()
	}

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.Use(gin.Recovery())

	router.Use(security.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware())
	}

	if cfg.TemplatesPath != "" {
		tmpl := template.Must(template.New("").Funcs(richtext.FuncMap()).ParseGlob(cfg.TemplatesPath + "/*.html"))
		router.SetHTMLTemplate(tmpl)
	}
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	health := NewHealthController(cfg.SessionDB, registry, cfg.Version)
	richText := NewRichTextController(cfg.TruncateLength)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Rich text API. Stateless, so no session or CSRF token is needed.
	router.POST("/api/richtext/render", richText.Render)
	router.POST("/api/richtext/truncate", richText.Truncate)
	router.POST("/api/richtext/urls", richText.URLs)

	// Everything below is bound to a browser session.
	if cfg.SessionManager == nil {
		return router
	}
	app := router.Group("/")

	// CSRF must run before the session middleware so that the session
	// context is attached to the request CSRF hands on.
	if len(cfg.CSRFSecret) > 0 {
		app.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	app.Use(cfg.SessionManager.LoadAndSave())
	app.Use(cfg.SessionManager.StateMiddleware(registry, logger))

	uiState := NewUIStateController(logger)
	app.GET("/api/ui-state", uiState.GetState)
	app.GET("/api/ui-state/events", uiState.Events)
	app.POST("/api/ui-state/auth-modal", uiState.OpenAuthModal)
	app.DELETE("/api/ui-state/auth-modal", uiState.CloseAuthModal)
	app.PUT("/api/ui-state/auth-mode", uiState.SetAuthMode)
	app.PUT("/api/ui-state/user", uiState.SetUser)
	app.DELETE("/api/ui-state/user", uiState.ClearUser)

	// UI routes
	if cfg.TemplatesPath != "" {
		ui := NewUIController(richText.defaultMaxLength, cfg.Version)
		app.GET("/", ui.IndexPage)
		app.POST("/ui/auth-modal", ui.OpenAuthModalForm)
		app.POST("/ui/auth-modal/close", ui.CloseAuthModalForm)
	}

	return router
}
