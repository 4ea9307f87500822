package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoustavBera/Odoo25/internal/question/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

func newQuestion(title string, askedOn time.Time) models.Question {
	return models.Question{
		ID:         id.NewQuestionID(),
		Title:      title,
		AuthorID:   id.NewUserID(),
		AuthorName: "asker",
		AskedOn:    askedOn,
	}
}

func TestMemoryQuestionStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("How do I test?", time.Now())

	require.NoError(t, s.Save(ctx, q))

	got, err := s.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, got.Title)

	_, err = s.FindByID(ctx, id.NewQuestionID())
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryQuestionStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("aliasing", time.Now())
	q.UpVote = []string{"u1"}
	require.NoError(t, s.Save(ctx, q))

	got, err := s.FindByID(ctx, q.ID)
	require.NoError(t, err)
	got.UpVote[0] = "tampered"

	fresh, err := s.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, fresh.UpVote, "mutating a read result must not touch the store")
}

func TestMemoryQuestionStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	base := time.Now()

	// Inserted out of order on purpose.
	middle := newQuestion("middle", base.Add(-time.Hour))
	oldest := newQuestion("oldest", base.Add(-2*time.Hour))
	newest := newQuestion("newest", base)
	for _, q := range []models.Question{middle, oldest, newest} {
		require.NoError(t, s.Save(ctx, q))
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestMemoryQuestionStore_DeleteDiscardsAnswers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("to delete", time.Now())
	answer := models.Answer{ID: id.NewAnswerID(), Body: "a", AnsweredOn: time.Now()}
	q.AppendAnswer(answer)
	require.NoError(t, s.Save(ctx, q))

	require.NoError(t, s.Delete(ctx, q.ID))

	_, err := s.FindByID(ctx, q.ID)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = s.FindByAnswerID(ctx, answer.ID)
	require.ErrorIs(t, err, sentinel.ErrNotFound, "answers have no existence outside their question")

	require.ErrorIs(t, s.Delete(ctx, q.ID), sentinel.ErrNotFound)
}

func TestMemoryQuestionStore_MutateByAnswerID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("with answer", time.Now())
	answer := models.Answer{ID: id.NewAnswerID(), Body: "a", AnsweredOn: time.Now()}
	q.AppendAnswer(answer)
	require.NoError(t, s.Save(ctx, q))

	updated, err := s.MutateByAnswerID(ctx, answer.ID, func(question *models.Question) error {
		question.FindAnswer(answer.ID).ApplyVote("u1", models.DirectionUp)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.FindAnswer(answer.ID).Score())
}

func TestMemoryQuestionStore_MutateErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("unchanged", time.Now())
	require.NoError(t, s.Save(ctx, q))

	_, err := s.Mutate(ctx, q.ID, func(question *models.Question) error {
		question.UpVote = append(question.UpVote, "u1")
		return sentinel.ErrConflict
	})
	require.Error(t, err)

	got, err := s.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, got.UpVote, "aborted mutation must not persist")
}

// Concurrent votes exercise the lost-update hazard: every toggle runs under
// the store lock, so all of them must land.
func TestMemoryQuestionStore_ConcurrentVotesAllLand(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryQuestionStore()
	q := newQuestion("contended", time.Now())
	require.NoError(t, s.Save(ctx, q))

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			voter := id.NewUserID().String()
			_, err := s.Mutate(ctx, q.ID, func(question *models.Question) error {
				question.ApplyVote(voter, models.DirectionUp)
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := s.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, got.UpVote, voters)
}
