package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/quizgen"
	"github.com/abhisek/quizly/internal/store"
)

// In-memory repo fakes. Single-goroutine tests, no locking needed.

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.profiles[p.ExternalID] = p
	return nil
}

func (r *fakeProfileRepo) GetByExternalID(_ context.Context, externalID string) (*models.Profile, error) {
	p, ok := r.profiles[externalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

type fakeTopicRepo struct {
	topics map[uuid.UUID]*models.Topic
	err    error
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[uuid.UUID]*models.Topic{}}
}

func (r *fakeTopicRepo) Create(_ context.Context, t *models.Topic) error {
	if r.err != nil {
		return r.err
	}
	r.topics[t.ID] = t
	return nil
}

func (r *fakeTopicRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

func (r *fakeTopicRepo) UpdateMetadata(_ context.Context, t *models.Topic) error {
	r.topics[t.ID] = t
	return nil
}

func (r *fakeTopicRepo) ListVisible(_ context.Context, profileID uuid.UUID) ([]*models.Topic, error) {
	var out []*models.Topic
	for _, t := range r.topics {
		if t.ReadableBy(profileID) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions []*models.Question
	createErr error
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *models.Question) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.questions = append(r.questions, q)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *fakeQuestionRepo) FirstUnused(_ context.Context, topicID uuid.UUID, difficulty models.Difficulty, exclude []uuid.UUID) (*models.Question, error) {
	excluded := map[uuid.UUID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	for _, q := range r.questions {
		if q.TopicID == topicID && q.Difficulty == difficulty && !excluded[q.ID] {
			return q, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *fakeQuestionRepo) RecentTexts(_ context.Context, topicID uuid.UUID, limit int) ([]string, error) {
	var texts []string
	for i := len(r.questions) - 1; i >= 0; i-- {
		if r.questions[i].TopicID == topicID {
			texts = append(texts, r.questions[i].Text)
		}
		if limit > 0 && len(texts) == limit {
			break
		}
	}
	return texts, nil
}

func (r *fakeQuestionRepo) ListByTopic(_ context.Context, topicID uuid.UUID) ([]*models.Question, error) {
	var out []*models.Question
	for _, q := range r.questions {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*models.QuizSession
	saveErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*models.QuizSession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.QuizSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.QuizSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, s *models.QuizSession) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) ListByProfile(_ context.Context, profileID uuid.UUID) ([]*models.QuizSession, error) {
	var out []*models.QuizSession
	for _, s := range r.sessions {
		if s.ProfileID == profileID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

type fakeAnswerRepo struct {
	records   []*models.AnswerRecord
	createErr error
}

func (r *fakeAnswerRepo) Create(_ context.Context, a *models.AnswerRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, a)
	return nil
}

func (r *fakeAnswerRepo) ListBySession(_ context.Context, sessionID uuid.UUID, limit int) ([]*models.AnswerRecord, error) {
	var out []*models.AnswerRecord
	for _, a := range r.records {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAnswerRepo) QuestionIDs(_ context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, a := range r.records {
		if a.SessionID == sessionID {
			ids = append(ids, a.QuestionID)
		}
	}
	return ids, nil
}

// fakeGenerator returns questions from a queue or a fixed error.
type fakeGenerator struct {
	queue  []*models.Question
	err    error
	inputs []quizgen.GenerateInput
}

func (g *fakeGenerator) Generate(_ context.Context, input quizgen.GenerateInput) (*models.Question, error) {
	g.inputs = append(g.inputs, input)
	if g.err != nil {
		return nil, g.err
	}
	if len(g.queue) == 0 {
		return nil, store.ErrNotFound
	}
	q := g.queue[0]
	g.queue = g.queue[1:]
	return q, nil
}
