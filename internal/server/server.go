// Package server exposes the assistant over HTTP: grounded Q&A, quiz
// generation and evaluation, follow-up suggestions, and history
// introspection.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/quiz"
	"github.com/shruti/nursebot/internal/retrieval"
)

// Server holds the wired application services behind the HTTP handlers.
type Server struct {
	answerer  *retrieval.Answerer
	suggester *retrieval.Suggester
	generator *quiz.Generator
	grader    *quiz.Grader
	history   *quiz.History
	logger    *zap.Logger
}

// New wires a Server. A nil logger falls back to a nop logger.
func New(answerer *retrieval.Answerer, suggester *retrieval.Suggester, generator *quiz.Generator, grader *quiz.Grader, history *quiz.History, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		answerer:  answerer,
		suggester: suggester,
		generator: generator,
		grader:    grader,
		history:   history,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered. CORS is wide
// open since the UI is served from a different origin in development.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", s.handleHealth)
	r.POST("/ask", s.handleAsk)
	r.POST("/suggest", s.handleSuggest)
	r.GET("/quiz", s.handleQuiz)
	r.POST("/quiz/evaluate", s.handleEvaluate)
	r.GET("/quiz/history", s.handleHistory)
	r.DELETE("/quiz/history/:topic", s.handleClearHistory)

	return r
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
