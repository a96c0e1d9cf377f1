package http

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legalmitra/legalmitra/internal/domain/auth"
	"github.com/legalmitra/legalmitra/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// static holds the embedded chat frontend; pass nil to disable it.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, static fs.FS) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(),
		errorHandlingMiddleware(handler.logger),
	)
	if cfg.HTTP.RateLimit.Enabled {
		router.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	}

	router.GET("/healthz", handler.Health)

	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.POST("/forgot-password", handler.ForgotPassword)
	router.GET("/validate-reset", handler.ValidateReset)
	router.POST("/reset-password", handler.ResetPassword)
	router.POST("/refresh", handler.Refresh)

	router.POST("/chat", handler.Chat)
	router.GET("/trending", handler.Trending)

	authorized := router.Group("/", authMiddleware(authSvc))
	{
		authorized.GET("/me", handler.Profile)
	}

	if static != nil {
		fileServer := http.FileServer(http.FS(static))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "not_found", "message": "route not found"}})
				return
			}
			path := strings.TrimPrefix(c.Request.URL.Path, "/")
			if path == "" {
				path = "index.html"
			}
			if _, err := fs.Stat(static, path); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "not_found", "message": "route not found"}})
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
