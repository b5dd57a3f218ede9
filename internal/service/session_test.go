package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizly/internal/adaptive"
	"github.com/abhisek/quizly/internal/grading"
	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/store"
)

type sessionFixture struct {
	svc       *SessionService
	sessions  *fakeSessionRepo
	answers   *fakeAnswerRepo
	questions *fakeQuestionRepo
	topics    *fakeTopicRepo
	generator *fakeGenerator

	profile *models.Profile
	topic   *models.Topic
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		sessions:  newFakeSessionRepo(),
		answers:   &fakeAnswerRepo{},
		questions: &fakeQuestionRepo{},
		topics:    newFakeTopicRepo(),
		generator: &fakeGenerator{},
		profile:   &models.Profile{ID: uuid.New(), ExternalID: "user-1", DisplayName: "User One"},
	}
	f.topic = &models.Topic{
		ID:      uuid.New(),
		OwnerID: f.profile.ID,
		Title:   "European Capitals",
	}
	f.topics.topics[f.topic.ID] = f.topic

	f.svc = NewSessionService(
		f.sessions, f.answers, f.questions, f.topics,
		f.generator, nil, nil,
		adaptive.DefaultPolicy(), logger.NewNop(),
	)
	return f
}

func (f *sessionFixture) addQuestion(difficulty models.Difficulty, text, answer string) *models.Question {
	q := &models.Question{
		ID:            uuid.New(),
		TopicID:       f.topic.ID,
		Text:          text,
		Type:          models.TypeShortAnswer,
		Difficulty:    difficulty,
		CorrectAnswer: answer,
		Source:        models.SourceUser,
	}
	f.questions.questions = append(f.questions.questions, q)
	return q
}

func (f *sessionFixture) start(t *testing.T) *models.QuizSession {
	t.Helper()
	session, err := f.svc.Start(context.Background(), f.profile, f.topic.ID, models.DifficultyEasy)
	require.NoError(t, err)
	return session
}

func TestSessionStart(t *testing.T) {
	f := newSessionFixture(t)

	session := f.start(t)
	assert.Equal(t, f.profile.ID, session.ProfileID)
	assert.Equal(t, f.topic.ID, session.TopicID)
	assert.Equal(t, models.DifficultyEasy, session.CurrentDifficulty)
	assert.True(t, session.Active)
	assert.Zero(t, session.TotalQuestions)
}

func TestSessionStart_DefaultsInvalidDifficulty(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.Start(context.Background(), f.profile, f.topic.ID, "impossible")
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyEasy, session.CurrentDifficulty)
}

func TestSessionStart_PrivateTopicForbidden(t *testing.T) {
	f := newSessionFixture(t)
	stranger := &models.Profile{ID: uuid.New(), ExternalID: "user-2"}

	_, err := f.svc.Start(context.Background(), stranger, f.topic.ID, models.DifficultyEasy)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestNextQuestion_ReusesBeforeGenerating(t *testing.T) {
	f := newSessionFixture(t)
	stored := f.addQuestion(models.DifficultyEasy, "Capital of France?", "Paris")
	session := f.start(t)

	q, err := f.svc.NextQuestion(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, q.ID)
	assert.Empty(t, f.generator.inputs, "generator must not run while the pool has questions")
}

func TestNextQuestion_SkipsAnsweredQuestions(t *testing.T) {
	f := newSessionFixture(t)
	first := f.addQuestion(models.DifficultyEasy, "Capital of France?", "Paris")
	second := f.addQuestion(models.DifficultyEasy, "Capital of Spain?", "Madrid")
	session := f.start(t)

	_, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, first.ID, "Paris")
	require.NoError(t, err)

	q, err := f.svc.NextQuestion(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, q.ID)
}

func TestNextQuestion_GeneratesWhenPoolExhausted(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	generated := &models.Question{
		ID:            uuid.New(),
		TopicID:       f.topic.ID,
		Text:          "Capital of Italy?",
		Type:          models.TypeMultipleChoice,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "Rome",
		Source:        models.SourceGenerated,
	}
	f.generator.queue = append(f.generator.queue, generated)

	q, err := f.svc.NextQuestion(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.ID, q.ID)

	// The generated question joins the pool.
	require.Len(t, f.questions.questions, 1)
	assert.Equal(t, generated.ID, f.questions.questions[0].ID)

	require.Len(t, f.generator.inputs, 1)
	assert.Equal(t, models.DifficultyEasy, f.generator.inputs[0].Difficulty)
	assert.Equal(t, f.topic.ID, f.generator.inputs[0].Topic.ID)
}

func TestNextQuestion_GenerationFailurePersistsNothing(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)
	f.generator.err = &llm.ErrInvalidResponse{Err: errors.New("no JSON")}

	_, err := f.svc.NextQuestion(context.Background(), f.profile, session.ID)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Empty(t, f.questions.questions, "nothing may be persisted on generation failure")
}

func TestNextQuestion_ClosedSession(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)
	_, err := f.svc.End(context.Background(), f.profile, session.ID)
	require.NoError(t, err)

	_, err = f.svc.NextQuestion(context.Background(), f.profile, session.ID)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSubmitAnswer_CorrectAndIncorrect(t *testing.T) {
	f := newSessionFixture(t)
	q := f.addQuestion(models.DifficultyEasy, "Capital of France?", "Paris")
	q2 := f.addQuestion(models.DifficultyEasy, "Capital of Spain?", "Madrid")
	session := f.start(t)

	res, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, "  pArIs ")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, "Paris", res.CorrectAnswer)
	assert.Equal(t, 1, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)

	res, err = f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q2.ID, "Lisbon")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
}

// The counters must mirror the answer history after every call.
func TestSubmitAnswer_CountersMirrorHistory(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	answers := []string{"Paris", "wrong", "Madrid", "wrong", "Rome"}
	for i, a := range answers {
		q := f.addQuestion(session.CurrentDifficulty, "Q", capitalFor(i))
		_, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, a)
		require.NoError(t, err)

		stored, err := f.sessions.GetByID(context.Background(), session.ID)
		require.NoError(t, err)

		records, err := f.answers.ListBySession(context.Background(), session.ID, 0)
		require.NoError(t, err)
		correct := 0
		for _, r := range records {
			if r.Correct {
				correct++
			}
		}
		assert.Equal(t, len(records), stored.TotalQuestions)
		assert.Equal(t, correct, stored.CorrectAnswers)
	}
}

func capitalFor(i int) string {
	return []string{"Paris", "Madrid", "Madrid", "Rome", "Rome"}[i]
}

func TestSubmitAnswer_DifficultyStepsUp(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	// Five correct answers: accuracy 1.0 > 0.7 from the fifth answer on.
	var last *AnswerResult
	for i := 0; i < 5; i++ {
		q := f.addQuestion(session.CurrentDifficulty, "Q", "Paris")
		var err error
		last, err = f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, "Paris")
		require.NoError(t, err)
		session, err = f.sessions.GetByID(context.Background(), session.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, models.DifficultyMedium, last.Difficulty)
	assert.True(t, last.DifficultyChanged)
}

func TestSubmitAnswer_DifficultyUnchangedBeforeMinimum(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	for i := 0; i < 4; i++ {
		q := f.addQuestion(models.DifficultyEasy, "Q", "Paris")
		res, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, "Paris")
		require.NoError(t, err)
		assert.Equal(t, models.DifficultyEasy, res.Difficulty)
		assert.False(t, res.DifficultyChanged)
	}
}

func TestSubmitAnswer_QuestionFromOtherTopic(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	foreign := &models.Question{
		ID:            uuid.New(),
		TopicID:       uuid.New(),
		Text:          "Q",
		Type:          models.TypeShortAnswer,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "A",
	}
	f.questions.questions = append(f.questions.questions, foreign)

	_, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, foreign.ID, "A")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitAnswer_OpenFormFeedbackDegrades(t *testing.T) {
	f := newSessionFixture(t)

	// Feedback provider that always fails; the answer still grades.
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	f.svc = NewSessionService(
		f.sessions, f.answers, f.questions, f.topics,
		f.generator, grading.NewFeedbackGenerator(mock), nil,
		adaptive.DefaultPolicy(), logger.NewNop(),
	)

	q := f.addQuestion(models.DifficultyEasy, "Which river runs through Budapest?", "The Danube")
	session := f.start(t)

	res, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, "The Danube")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Empty(t, res.Feedback)
}

func TestSubmitAnswer_OpenFormFeedbackIncluded(t *testing.T) {
	f := newSessionFixture(t)

	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Close, but name the river explicitly."`),
	})
	f.svc = NewSessionService(
		f.sessions, f.answers, f.questions, f.topics,
		f.generator, grading.NewFeedbackGenerator(mock), nil,
		adaptive.DefaultPolicy(), logger.NewNop(),
	)

	q := f.addQuestion(models.DifficultyEasy, "Which river runs through Budapest?", "The Danube")
	session := f.start(t)

	res, err := f.svc.SubmitAnswer(context.Background(), f.profile, session.ID, q.ID, "a river")
	require.NoError(t, err)
	assert.False(t, res.Correct, "feedback never changes correctness")
	assert.Equal(t, "Close, but name the river explicitly.", res.Feedback)

	records, err := f.answers.ListBySession(context.Background(), session.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, res.Feedback, records[0].Feedback)
}

func TestEnd_Idempotent(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)

	ended, err := f.svc.End(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	require.NotNil(t, ended.EndedAt)
	first := *ended.EndedAt

	again, err := f.svc.End(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.False(t, again.Active)
	assert.Equal(t, first, *again.EndedAt)
}

func TestAdvise_AppliesAdvice(t *testing.T) {
	f := newSessionFixture(t)

	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"action": "suggest_subtopic", "rationale": "Western Europe is solid.", "focus_area": "Balkan capitals"}`),
	})
	f.svc = NewSessionService(
		f.sessions, f.answers, f.questions, f.topics,
		f.generator, nil, adaptive.NewAdvisor(mock),
		adaptive.DefaultPolicy(), logger.NewNop(),
	)

	session := f.start(t)

	advice, err := f.svc.Advise(context.Background(), f.profile, session.ID)
	require.NoError(t, err)
	assert.Equal(t, adaptive.ActionSuggestSubtopic, advice.Action)

	stored, err := f.sessions.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Balkan capitals", stored.FocusArea)
}

func TestAdvise_ProviderFailure(t *testing.T) {
	f := newSessionFixture(t)

	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	f.svc = NewSessionService(
		f.sessions, f.answers, f.questions, f.topics,
		f.generator, nil, adaptive.NewAdvisor(mock),
		adaptive.DefaultPolicy(), logger.NewNop(),
	)

	session := f.start(t)

	_, err := f.svc.Advise(context.Background(), f.profile, session.ID)
	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestSession_OwnershipEnforced(t *testing.T) {
	f := newSessionFixture(t)
	session := f.start(t)
	stranger := &models.Profile{ID: uuid.New(), ExternalID: "user-2"}

	_, err := f.svc.Get(context.Background(), stranger, session.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(context.Background(), f.profile, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
