package store

import (
	"context"
	"sort"
	"sync"

	"github.com/KoustavBera/Odoo25/internal/question/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

// MemoryQuestionStore keeps aggregates in process memory. Reads hand out
// deep copies so callers can't alias internal state; mutations run under
// the write lock, which is what makes Mutate atomic here.
type MemoryQuestionStore struct {
	mu        sync.RWMutex
	questions map[id.QuestionID]models.Question
	byAnswer  map[id.AnswerID]id.QuestionID
}

func NewMemoryQuestionStore() *MemoryQuestionStore {
	return &MemoryQuestionStore{
		questions: make(map[id.QuestionID]models.Question),
		byAnswer:  make(map[id.AnswerID]id.QuestionID),
	}
}

func (s *MemoryQuestionStore) Save(_ context.Context, question models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(question)
	return nil
}

func (s *MemoryQuestionStore) saveLocked(question models.Question) {
	s.questions[question.ID] = cloneQuestion(question)
	for i := range question.Answers {
		s.byAnswer[question.Answers[i].ID] = question.ID
	}
}

func (s *MemoryQuestionStore) FindByID(_ context.Context, questionID id.QuestionID) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.questions[questionID]; ok {
		return cloneQuestion(q), nil
	}
	return models.Question{}, sentinel.ErrNotFound
}

func (s *MemoryQuestionStore) FindByAnswerID(_ context.Context, answerID id.AnswerID) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questionID, ok := s.byAnswer[answerID]
	if !ok {
		return models.Question{}, sentinel.ErrNotFound
	}
	return cloneQuestion(s.questions[questionID]), nil
}

func (s *MemoryQuestionStore) List(_ context.Context) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, cloneQuestion(q))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AskedOn.After(out[j].AskedOn)
	})
	return out, nil
}

func (s *MemoryQuestionStore) Delete(_ context.Context, questionID id.QuestionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[questionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	// Answers are owned by the question; they go with it.
	for i := range question.Answers {
		delete(s.byAnswer, question.Answers[i].ID)
	}
	delete(s.questions, questionID)
	return nil
}

func (s *MemoryQuestionStore) Mutate(_ context.Context, questionID id.QuestionID, fn func(*models.Question) error) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.questions[questionID]
	if !ok {
		return models.Question{}, sentinel.ErrNotFound
	}
	return s.mutateLocked(stored, fn)
}

func (s *MemoryQuestionStore) MutateByAnswerID(_ context.Context, answerID id.AnswerID, fn func(*models.Question) error) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questionID, ok := s.byAnswer[answerID]
	if !ok {
		return models.Question{}, sentinel.ErrNotFound
	}
	return s.mutateLocked(s.questions[questionID], fn)
}

func (s *MemoryQuestionStore) mutateLocked(stored models.Question, fn func(*models.Question) error) (models.Question, error) {
	working := cloneQuestion(stored)
	if err := fn(&working); err != nil {
		return models.Question{}, err
	}
	s.saveLocked(working)
	return cloneQuestion(working), nil
}

func cloneQuestion(q models.Question) models.Question {
	out := q
	out.Tags = append([]string(nil), q.Tags...)
	out.UpVote = append([]string(nil), q.UpVote...)
	out.DownVote = append([]string(nil), q.DownVote...)
	out.Answers = make([]models.Answer, len(q.Answers))
	for i := range q.Answers {
		a := q.Answers[i]
		a.UpVote = append([]string(nil), a.UpVote...)
		a.DownVote = append([]string(nil), a.DownVote...)
		out.Answers[i] = a
	}
	return out
}
