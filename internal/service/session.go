package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/adaptive"
	"github.com/abhisek/quizly/internal/grading"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/quizgen"
	"github.com/abhisek/quizly/internal/store"
)

// advisorHistoryLimit is how many recent answers the evolution advisor sees.
const advisorHistoryLimit = 10

// SessionService drives the quiz loop: question provision, grading,
// counter updates, and difficulty adaptation. Each call is one sequential
// request/response cycle; there is no locking and last write wins.
type SessionService struct {
	sessions  store.SessionRepo
	answers   store.AnswerRepo
	questions store.QuestionRepo
	topics    store.TopicRepo

	generator quizgen.Generator
	feedback  *grading.FeedbackGenerator
	advisor   *adaptive.Advisor
	policy    adaptive.Policy
	log       *logger.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(
	sessions store.SessionRepo,
	answers store.AnswerRepo,
	questions store.QuestionRepo,
	topics store.TopicRepo,
	generator quizgen.Generator,
	feedback *grading.FeedbackGenerator,
	advisor *adaptive.Advisor,
	policy adaptive.Policy,
	log *logger.Logger,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		answers:   answers,
		questions: questions,
		topics:    topics,
		generator: generator,
		feedback:  feedback,
		advisor:   advisor,
		policy:    policy,
		log:       log.With("service", "session"),
	}
}

// Start opens a new session for the profile on a topic it may read.
func (s *SessionService) Start(ctx context.Context, profile *models.Profile, topicID uuid.UUID, difficulty models.Difficulty) (*models.QuizSession, error) {
	topic, err := s.loadTopic(ctx, profile, topicID)
	if err != nil {
		return nil, err
	}

	if !difficulty.Valid() {
		difficulty = models.DifficultyEasy
	}

	session := &models.QuizSession{
		ID:                uuid.New(),
		ProfileID:         profile.ID,
		TopicID:           topic.ID,
		CurrentDifficulty: difficulty,
		Active:            true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, &PersistenceError{Op: "create session", Err: err}
	}

	s.log.Info("session started",
		"session_id", session.ID,
		"topic_id", topic.ID,
		"difficulty", difficulty,
	)
	return session, nil
}

// Get returns a session the profile owns.
func (s *SessionService) Get(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) (*models.QuizSession, error) {
	return s.loadOwnSession(ctx, profile, sessionID)
}

// List returns the profile's sessions, newest first.
func (s *SessionService) List(ctx context.Context, profile *models.Profile) ([]*models.QuizSession, error) {
	sessions, err := s.sessions.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "list sessions", Err: err}
	}
	return sessions, nil
}

// History returns the session's answer records in submission order.
func (s *SessionService) History(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) ([]*models.AnswerRecord, error) {
	if _, err := s.loadOwnSession(ctx, profile, sessionID); err != nil {
		return nil, err
	}
	records, err := s.answers.ListBySession(ctx, sessionID, 0)
	if err != nil {
		return nil, &PersistenceError{Op: "list answers", Err: err}
	}
	return records, nil
}

// NextQuestion supplies the session's next question: a stored question from
// the (topic, difficulty) pool that this session has not answered yet, or a
// freshly generated one when the pool is exhausted. Reuse always comes
// before generation. A generation failure aborts with nothing persisted.
func (s *SessionService) NextQuestion(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) (*models.Question, error) {
	session, err := s.loadOwnSession(ctx, profile, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, ErrSessionClosed
	}

	answered, err := s.answers.QuestionIDs(ctx, session.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "list answered questions", Err: err}
	}

	q, err := s.questions.FirstUnused(ctx, session.TopicID, session.CurrentDifficulty, answered)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, &PersistenceError{Op: "load question", Err: err}
	}

	return s.generate(ctx, session)
}

// generate requests a new question from the collaborator and persists it.
func (s *SessionService) generate(ctx context.Context, session *models.QuizSession) (*models.Question, error) {
	topic, err := s.topics.GetByID(ctx, session.TopicID)
	if err != nil {
		return nil, &PersistenceError{Op: "load topic", Err: err}
	}

	prior, err := s.questions.RecentTexts(ctx, topic.ID, quizgen.DefaultConfig().MaxNegativeExamples)
	if err != nil {
		return nil, &PersistenceError{Op: "load prior questions", Err: err}
	}

	q, err := s.generator.Generate(ctx, quizgen.GenerateInput{
		Topic:          topic,
		Difficulty:     session.CurrentDifficulty,
		Type:           typeForDifficulty(session.CurrentDifficulty),
		PriorQuestions: prior,
	})
	if err != nil {
		// No fallback question, nothing persisted.
		return nil, &GenerationError{Err: err}
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, &PersistenceError{Op: "save generated question", Err: err}
	}

	s.log.Info("question generated",
		"session_id", session.ID,
		"question_id", q.ID,
		"difficulty", q.Difficulty,
		"type", q.Type,
	)
	return q, nil
}

// typeForDifficulty picks the generated question type per tier: closed
// forms while the user warms up, open forms once the material gets hard.
func typeForDifficulty(d models.Difficulty) models.QuestionType {
	switch d {
	case models.DifficultyEasy:
		return models.TypeMultipleChoice
	case models.DifficultyMedium:
		return models.TypeFillBlank
	default:
		return models.TypeShortAnswer
	}
}

// AnswerResult is what the user sees after submitting an answer.
type AnswerResult struct {
	Correct           bool              `json:"correct"`
	CorrectAnswer     string            `json:"correct_answer"`
	Rationale         string            `json:"rationale,omitempty"`
	Feedback          string            `json:"feedback,omitempty"`
	Difficulty        models.Difficulty `json:"difficulty"`
	DifficultyChanged bool              `json:"difficulty_changed"`
	TotalQuestions    int               `json:"total_questions"`
	CorrectAnswers    int               `json:"correct_answers"`
}

// SubmitAnswer grades a submission, appends the answer record, updates the
// session counters, and re-evaluates difficulty. The steps run sequentially
// against the store; the counters mirror the answer history after every
// call.
func (s *SessionService) SubmitAnswer(ctx context.Context, profile *models.Profile, sessionID, questionID uuid.UUID, submitted string) (*AnswerResult, error) {
	session, err := s.loadOwnSession(ctx, profile, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, ErrSessionClosed
	}

	q, err := s.questions.GetByID(ctx, questionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load question", Err: err}
	}
	if q.TopicID != session.TopicID {
		return nil, ErrForbidden
	}

	correct := grading.Grade(q, submitted)

	// Open-form answers get qualitative feedback. Display-only: a failure
	// degrades to empty feedback and never affects correctness.
	feedback := ""
	if q.Type.Open() && s.feedback != nil {
		feedback, err = s.feedback.Feedback(ctx, q, submitted)
		if err != nil {
			s.log.Warn("feedback generation failed",
				"session_id", session.ID,
				"question_id", q.ID,
				"error", err,
			)
			feedback = ""
		}
	}

	record := &models.AnswerRecord{
		ID:         uuid.New(),
		SessionID:  session.ID,
		QuestionID: q.ID,
		Submitted:  submitted,
		Correct:    correct,
		Feedback:   feedback,
	}
	if err := s.answers.Create(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "save answer", Err: err}
	}

	session.TotalQuestions++
	if correct {
		session.CorrectAnswers++
	}

	before := session.CurrentDifficulty
	session.CurrentDifficulty = adaptive.NextDifficulty(
		before, session.TotalQuestions, session.CorrectAnswers, s.policy,
	)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	if session.CurrentDifficulty != before {
		s.log.Info("difficulty adapted",
			"session_id", session.ID,
			"from", before,
			"to", session.CurrentDifficulty,
			"accuracy", session.Accuracy(),
		)
	}

	return &AnswerResult{
		Correct:           correct,
		CorrectAnswer:     q.CorrectAnswer,
		Rationale:         q.Rationale,
		Feedback:          feedback,
		Difficulty:        session.CurrentDifficulty,
		DifficultyChanged: session.CurrentDifficulty != before,
		TotalQuestions:    session.TotalQuestions,
		CorrectAnswers:    session.CorrectAnswers,
	}, nil
}

// End closes the session. Idempotent.
func (s *SessionService) End(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) (*models.QuizSession, error) {
	session, err := s.loadOwnSession(ctx, profile, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return session, nil
	}

	now := time.Now()
	session.Active = false
	session.EndedAt = &now

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	s.log.Info("session ended",
		"session_id", session.ID,
		"total", session.TotalQuestions,
		"correct", session.CorrectAnswers,
	)
	return session, nil
}

// Advise asks the evolution advisor for a recommendation based on the
// session's recent history and applies any difficulty or focus-area fields
// it returns.
func (s *SessionService) Advise(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) (*adaptive.Advice, error) {
	if s.advisor == nil {
		return nil, &GenerationError{Err: errors.New("advisor not configured")}
	}

	session, err := s.loadOwnSession(ctx, profile, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, ErrSessionClosed
	}

	topic, err := s.topics.GetByID(ctx, session.TopicID)
	if err != nil {
		return nil, &PersistenceError{Op: "load topic", Err: err}
	}

	history, err := s.recentHistory(ctx, session)
	if err != nil {
		return nil, err
	}

	advice, err := s.advisor.Advise(ctx, session, topic, history)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	advice.Apply(session)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	s.log.Info("advice applied",
		"session_id", session.ID,
		"action", advice.Action,
		"difficulty", session.CurrentDifficulty,
	)
	return advice, nil
}

// recentHistory assembles the advisor's view of the last answers.
func (s *SessionService) recentHistory(ctx context.Context, session *models.QuizSession) ([]adaptive.AnswerSummary, error) {
	records, err := s.answers.ListBySession(ctx, session.ID, 0)
	if err != nil {
		return nil, &PersistenceError{Op: "list answers", Err: err}
	}
	if len(records) > advisorHistoryLimit {
		records = records[len(records)-advisorHistoryLimit:]
	}

	history := make([]adaptive.AnswerSummary, 0, len(records))
	for _, rec := range records {
		q, err := s.questions.GetByID(ctx, rec.QuestionID)
		if err != nil {
			return nil, &PersistenceError{Op: "load question", Err: err}
		}
		history = append(history, adaptive.AnswerSummary{
			QuestionText: q.Text,
			Submitted:    rec.Submitted,
			Correct:      rec.Correct,
		})
	}
	return history, nil
}

func (s *SessionService) loadTopic(ctx context.Context, profile *models.Profile, topicID uuid.UUID) (*models.Topic, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load topic", Err: err}
	}
	if !topic.ReadableBy(profile.ID) {
		return nil, ErrForbidden
	}
	return topic, nil
}

func (s *SessionService) loadOwnSession(ctx context.Context, profile *models.Profile, sessionID uuid.UUID) (*models.QuizSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load session", Err: err}
	}
	if session.ProfileID != profile.ID {
		return nil, ErrForbidden
	}
	return session, nil
}
