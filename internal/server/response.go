package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/service"
	"github.com/abhisek/quizly/internal/store"
)

// respondError maps domain errors onto HTTP status codes. Every error is
// reported synchronously to the initiating request; nothing is swallowed
// here.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingProfile):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  "missing_profile",
			"error": err.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  "not_found",
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "forbidden",
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{
			"code":  "session_closed",
			"error": err.Error(),
		})
	default:
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			log.Warn("generation failure", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"code":  "generation_failed",
				"error": err.Error(),
			})
			return
		}

		var persErr *service.PersistenceError
		if errors.As(err, &persErr) {
			log.Error("persistence failure", "op", persErr.Op, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":  "persistence_failed",
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "bad_request",
			"error": err.Error(),
		})
	}
}

// questionView renders a question for delivery to the user: the correct
// answer and rationale stay server-side until the answer is graded.
func questionView(q *models.Question) gin.H {
	view := gin.H{
		"id":         q.ID,
		"topic_id":   q.TopicID,
		"text":       q.Text,
		"type":       q.Type,
		"difficulty": q.Difficulty,
		"source":     q.Source,
	}
	if opts := q.OptionList(); len(opts) > 0 {
		view["options"] = opts
	}
	return view
}
