package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/service"
)

// TopicHandler serves topic and question-pool management.
type TopicHandler struct {
	profiles *service.ProfileService
	topics   *service.TopicService
	log      *logger.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(profiles *service.ProfileService, topics *service.TopicService, log *logger.Logger) *TopicHandler {
	return &TopicHandler{profiles: profiles, topics: topics, log: log}
}

type topicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// Create creates a topic owned by the caller.
func (h *TopicHandler) Create(c *gin.Context) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	topic, err := h.topics.Create(c.Request.Context(), profile, service.CreateTopicInput{
		Title:       req.Title,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// List returns the topics the caller may read.
func (h *TopicHandler) List(c *gin.Context) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	topics, err := h.topics.List(c.Request.Context(), profile)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// Get returns one topic.
func (h *TopicHandler) Get(c *gin.Context) {
	profile, topicID, ok := h.resolve(c)
	if !ok {
		return
	}

	topic, err := h.topics.Get(c.Request.Context(), profile, topicID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// Update edits a topic's metadata. Owner only.
func (h *TopicHandler) Update(c *gin.Context) {
	profile, topicID, ok := h.resolve(c)
	if !ok {
		return
	}

	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	topic, err := h.topics.UpdateMetadata(c.Request.Context(), profile, topicID, service.CreateTopicInput{
		Title:       req.Title,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// AddQuestion adds a user-authored question to an owned topic.
func (h *TopicHandler) AddQuestion(c *gin.Context) {
	profile, topicID, ok := h.resolve(c)
	if !ok {
		return
	}

	var req struct {
		Text          string   `json:"text"`
		Type          string   `json:"type"`
		Difficulty    string   `json:"difficulty"`
		CorrectAnswer string   `json:"correct_answer"`
		Options       []string `json:"options"`
		Rationale     string   `json:"rationale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q, err := h.topics.AddQuestion(c.Request.Context(), profile, topicID, service.AddQuestionInput{
		Text:          req.Text,
		Type:          models.QuestionType(req.Type),
		Difficulty:    models.Difficulty(req.Difficulty),
		CorrectAnswer: req.CorrectAnswer,
		Options:       req.Options,
		Rationale:     req.Rationale,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// Questions lists a topic's question pool. The stored answers are only
// included for the topic owner.
func (h *TopicHandler) Questions(c *gin.Context) {
	profile, topicID, ok := h.resolve(c)
	if !ok {
		return
	}

	topic, err := h.topics.Get(c.Request.Context(), profile, topicID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	questions, err := h.topics.Questions(c.Request.Context(), profile, topicID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if topic.OwnerID == profile.ID {
		c.JSON(http.StatusOK, gin.H{"questions": questions})
		return
	}

	views := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView(q))
	}
	c.JSON(http.StatusOK, gin.H{"questions": views})
}

// resolve loads the caller's profile and parses the topic ID parameter.
func (h *TopicHandler) resolve(c *gin.Context) (*models.Profile, uuid.UUID, bool) {
	profile, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return nil, uuid.Nil, false
	}

	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return nil, uuid.Nil, false
	}
	return profile, topicID, true
}
