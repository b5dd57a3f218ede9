package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/service"
)

// SessionHandler serves the quiz loop.
type SessionHandler struct {
	profiles *service.ProfileService
	sessions *service.SessionService
	log      *logger.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(profiles *service.ProfileService, sessions *service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{profiles: profiles, sessions: sessions, log: log}
}

// Start opens a session on a topic.
func (h *SessionHandler) Start(c *gin.Context) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req struct {
		TopicID    string `json:"topic_id" binding:"required"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	topicID, err := uuid.Parse(req.TopicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), profile, topicID, models.Difficulty(req.Difficulty))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// List returns the caller's sessions.
func (h *SessionHandler) List(c *gin.Context) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sessions, err := h.sessions.List(c.Request.Context(), profile)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Get returns one session.
func (h *SessionHandler) Get(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), profile, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// History returns the session's answer records.
func (h *SessionHandler) History(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	records, err := h.sessions.History(c.Request.Context(), profile, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": records})
}

// Next supplies the session's next question, hiding the stored answer.
func (h *SessionHandler) Next(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	q, err := h.sessions.NextQuestion(c.Request.Context(), profile, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, questionView(q))
}

// Answer grades a submission and returns the result.
func (h *SessionHandler) Answer(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		Answer     string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}

	result, err := h.sessions.SubmitAnswer(c.Request.Context(), profile, sessionID, questionID, req.Answer)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// End closes the session.
func (h *SessionHandler) End(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	session, err := h.sessions.End(c.Request.Context(), profile, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Advice runs the topic evolution advisor on demand.
func (h *SessionHandler) Advice(c *gin.Context) {
	profile, sessionID, ok := h.resolve(c)
	if !ok {
		return
	}

	advice, err := h.sessions.Advise(c.Request.Context(), profile, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// resolve loads the caller's profile and parses the session ID parameter.
func (h *SessionHandler) resolve(c *gin.Context) (*models.Profile, uuid.UUID, bool) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, uuid.Nil, false
	}
	return profile, sessionID, true
}
