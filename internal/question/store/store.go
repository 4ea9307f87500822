// Package store persists question aggregates.
//
// Mutations go through Mutate/MutateByAnswerID: the callback runs while the
// implementation holds exclusive access to the aggregate (store lock in
// memory, row lock in Postgres), so two concurrent votes can never lose each
// other's update the way a read-then-replace cycle would.
package store

import (
	"context"

	"github.com/KoustavBera/Odoo25/internal/question/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
)

// QuestionStore persists question aggregates. Implementations return
// sentinel.ErrNotFound for unknown ids.
type QuestionStore interface {
	Save(ctx context.Context, question models.Question) error
	FindByID(ctx context.Context, questionID id.QuestionID) (models.Question, error)
	// FindByAnswerID resolves the question owning the given answer.
	FindByAnswerID(ctx context.Context, answerID id.AnswerID) (models.Question, error)
	// List returns all questions ordered by creation time descending.
	List(ctx context.Context) ([]models.Question, error)
	// Delete removes the question and, with it, every embedded answer.
	Delete(ctx context.Context, questionID id.QuestionID) error
	// Mutate loads the aggregate, applies fn atomically, persists the result,
	// and returns the updated aggregate. fn returning an error aborts the
	// mutation without writing.
	Mutate(ctx context.Context, questionID id.QuestionID, fn func(*models.Question) error) (models.Question, error)
	// MutateByAnswerID is Mutate keyed by an embedded answer's id.
	MutateByAnswerID(ctx context.Context, answerID id.AnswerID, fn func(*models.Question) error) (models.Question, error)
}
