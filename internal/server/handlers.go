package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/llm"
	"github.com/shruti/nursebot/internal/quiz"
)

// defaultQuizCount is served when the caller omits the n parameter.
const defaultQuizCount = 10

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := s.answerer.Answer(c.Request.Context(), req.Question)
	if err != nil {
		s.renderLLMError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": answer})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	// Suggest never fails; degraded paths return fixed fallbacks.
	suggestions := s.suggester.Suggest(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) handleQuiz(c *gin.Context) {
	count := defaultQuizCount
	if raw := c.Query("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		count = n
	}

	result, err := s.generator.Generate(c.Request.Context(), quiz.GenerateRequest{
		Count:     count,
		Topic:     c.Query("topic"),
		Prompt:    c.Query("prompt"),
		SessionID: c.Query("session_id"),
	})
	if err != nil {
		var genErr *quiz.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(http.StatusOK, gin.H{"error": genErr.Reason})
			return
		}
		s.renderLLMError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz":       result.Questions,
		"session_id": result.SessionID,
	})
}

type evaluateRequest struct {
	SessionID string                 `json:"session_id"`
	Responses []quiz.SubmittedAnswer `json:"responses"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results := s.grader.Evaluate(c.Request.Context(), req.SessionID, req.Responses)
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"question_history": s.history.Snapshot()})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	topic := c.Param("topic")
	if s.history.Clear(topic) {
		c.JSON(http.StatusOK, gin.H{"message": "History cleared for topic: " + topic})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "No history found for topic: " + topic})
}

// renderLLMError maps provider failures onto HTTP statuses without
// leaking key material or transport detail to clients.
func (s *Server) renderLLMError(c *gin.Context, err error) {
	var notConfigured *llm.ErrNotConfigured
	var rateLimited *llm.ErrRateLimit

	switch {
	case errors.As(err, &notConfigured):
		s.logger.Error("provider not configured", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LLM provider is not configured"})
	case errors.As(err, &rateLimited):
		s.logger.Warn("provider rate limited", zap.Error(err))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "LLM provider rate limit reached, try again shortly"})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
