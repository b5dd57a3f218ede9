package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizly/internal/config"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/service"
)

// Server wraps the gin engine with the application's routes.
type Server struct {
	Engine *gin.Engine
}

// New builds the HTTP server and registers all routes.
func New(
	cfg config.Config,
	profiles *service.ProfileService,
	topics *service.TopicService,
	sessions *service.SessionService,
	log *logger.Logger,
) *Server {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLog(log))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", identityHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	profileHandler := NewProfileHandler(profiles, log)
	topicHandler := NewTopicHandler(profiles, topics, log)
	sessionHandler := NewSessionHandler(profiles, sessions, log)

	api := engine.Group("/api", requireIdentity())
	{
		api.GET("/profile", profileHandler.Get)
		api.POST("/profile", profileHandler.Register)

		api.GET("/topics", topicHandler.List)
		api.POST("/topics", topicHandler.Create)
		api.GET("/topics/:id", topicHandler.Get)
		api.PUT("/topics/:id", topicHandler.Update)
		api.GET("/topics/:id/questions", topicHandler.Questions)
		api.POST("/topics/:id/questions", topicHandler.AddQuestion)

		api.GET("/sessions", sessionHandler.List)
		api.POST("/sessions", sessionHandler.Start)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.GET("/sessions/:id/history", sessionHandler.History)
		api.GET("/sessions/:id/next", sessionHandler.Next)
		api.POST("/sessions/:id/answers", sessionHandler.Answer)
		api.POST("/sessions/:id/end", sessionHandler.End)
		api.POST("/sessions/:id/advice", sessionHandler.Advice)
	}

	return &Server{Engine: engine}
}

// Run starts the HTTP listener. Blocks until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Engine.Run(addr)
}

// requestLog logs one line per request.
func requestLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
