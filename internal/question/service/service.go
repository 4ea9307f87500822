// Package service implements the question lifecycle: asking, listing,
// answering, voting, and deletion. Authorization decisions live here, not in
// the handlers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KoustavBera/Odoo25/internal/audit"
	authmodels "github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/platform/metrics"
	"github.com/KoustavBera/Odoo25/internal/question/models"
	"github.com/KoustavBera/Odoo25/internal/question/store"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
	"github.com/KoustavBera/Odoo25/pkg/platform/strutil"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

// UserDirectory resolves author display names at posting time.
type UserDirectory interface {
	FindByID(ctx context.Context, userID string) (authmodels.User, error)
}

// AuditEmitter queues activity events; emission never blocks the request.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service owns the question aggregate's use cases.
type Service struct {
	questions store.QuestionStore
	users     UserDirectory
	auditor   AuditEmitter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

func New(
	questions store.QuestionStore,
	users UserDirectory,
	auditor AuditEmitter,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		questions: questions,
		users:     users,
		auditor:   auditor,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("stackit/question"),
	}
}

// Ask creates a question owned by the authenticated user. Tags are trimmed,
// lowercased, and deduplicated; the author name is resolved from the user
// record rather than trusted from the request.
func (s *Service) Ask(ctx context.Context, req *models.AskRequest) (*models.QuestionView, error) {
	ctx, span := s.tracer.Start(ctx, "question.Ask")
	defer span.End()

	if req == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.requireAuthor(ctx)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		ID:          id.NewQuestionID(),
		Title:       req.QuestionTitle,
		Description: req.Description,
		Tags:        strutil.DedupeAndTrimLower(req.QuestionTags),
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AskedOn:     requestcontext.Now(ctx),
	}
	span.SetAttributes(attribute.String("question.id", question.ID.String()))

	if err := s.questions.Save(ctx, question); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save question")
	}

	if s.metrics != nil {
		s.metrics.IncrementQuestionsAsked()
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionQuestionAsked,
		UserID:  author.ID.String(),
		Subject: question.ID.String(),
	})
	s.logger.InfoContext(ctx, "question asked",
		"question_id", question.ID.String(), "user_id", author.ID.String())

	view := question.View()
	return &view, nil
}

// List returns every question, newest first.
func (s *Service) List(ctx context.Context) ([]models.QuestionView, error) {
	ctx, span := s.tracer.Start(ctx, "question.List")
	defer span.End()

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list questions")
	}

	out := make([]models.QuestionView, 0, len(questions))
	for i := range questions {
		out = append(out, questions[i].View())
	}
	return out, nil
}

// Get returns one question by id.
func (s *Service) Get(ctx context.Context, rawID string) (*models.QuestionView, error) {
	ctx, span := s.tracer.Start(ctx, "question.Get")
	defer span.End()

	questionID, err := id.ParseQuestionID(rawID)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "question")
	}
	view := question.View()
	return &view, nil
}

// Delete removes a question. Only the question's owner or an admin may
// delete it; the embedded answers and votes go with it.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	ctx, span := s.tracer.Start(ctx, "question.Delete")
	defer span.End()

	questionID, err := id.ParseQuestionID(rawID)
	if err != nil {
		return err
	}
	caller := requestcontext.UserID(ctx)
	if caller.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return s.notFoundOrInternal(err, "question")
	}
	if question.AuthorID != caller && requestcontext.Role(ctx) != id.RoleAdmin {
		return dErrors.New(dErrors.CodeForbidden, "only the question's owner may delete it")
	}

	if err := s.questions.Delete(ctx, questionID); err != nil {
		return s.notFoundOrInternal(err, "question")
	}

	s.emit(ctx, audit.Event{
		Action:  audit.ActionQuestionDeleted,
		UserID:  caller.String(),
		Subject: questionID.String(),
	})
	s.logger.InfoContext(ctx, "question deleted",
		"question_id", questionID.String(), "user_id", caller.String())
	return nil
}

// Vote applies a toggle vote on a question. value is "upVote" or "downVote";
// repeating a vote retracts it, and voting the other way switches sides.
func (s *Service) Vote(ctx context.Context, rawID, value string) (*models.QuestionView, error) {
	ctx, span := s.tracer.Start(ctx, "question.Vote")
	defer span.End()

	questionID, err := id.ParseQuestionID(rawID)
	if err != nil {
		return nil, err
	}
	direction, err := models.ParseQuestionVote(value)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.UserID(ctx)
	if caller.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	updated, err := s.questions.Mutate(ctx, questionID, func(question *models.Question) error {
		question.ApplyVote(caller.String(), direction)
		return nil
	})
	if err != nil {
		return nil, s.notFoundOrInternal(err, "question")
	}

	if s.metrics != nil {
		s.metrics.IncrementVotesCast("question")
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionVoteCast,
		UserID:  caller.String(),
		Subject: questionID.String(),
		Detail:  value,
	})

	view := updated.View()
	return &view, nil
}

// ListAnswers returns the answers of one question.
func (s *Service) ListAnswers(ctx context.Context, rawID string) ([]models.AnswerView, error) {
	ctx, span := s.tracer.Start(ctx, "question.ListAnswers")
	defer span.End()

	questionID, err := id.ParseQuestionID(rawID)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "question")
	}

	out := make([]models.AnswerView, 0, len(question.Answers))
	for i := range question.Answers {
		out = append(out, question.Answers[i].View())
	}
	return out, nil
}

// PostAnswer appends an answer to a question. The answer count moves in
// lockstep with the list inside the same atomic mutation.
func (s *Service) PostAnswer(ctx context.Context, rawID string, req *models.PostAnswerRequest) (*models.AnswerView, error) {
	ctx, span := s.tracer.Start(ctx, "question.PostAnswer")
	defer span.End()

	questionID, err := id.ParseQuestionID(rawID)
	if err != nil {
		return nil, err
	}
	if req == nil || len(req.Content) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "answer must have content")
	}

	author, err := s.requireAuthor(ctx)
	if err != nil {
		return nil, err
	}

	answer := models.Answer{
		ID:         id.NewAnswerID(),
		Body:       req.Content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AnsweredOn: requestcontext.Now(ctx),
	}

	_, err = s.questions.Mutate(ctx, questionID, func(question *models.Question) error {
		question.AppendAnswer(answer)
		return nil
	})
	if err != nil {
		return nil, s.notFoundOrInternal(err, "question")
	}

	if s.metrics != nil {
		s.metrics.IncrementAnswersPosted()
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionAnswerPosted,
		UserID:  author.ID.String(),
		Subject: answer.ID.String(),
	})
	s.logger.InfoContext(ctx, "answer posted",
		"question_id", questionID.String(), "answer_id", answer.ID.String())

	view := answer.View()
	return &view, nil
}

// VoteAnswer applies a toggle vote on an answer. direction is "up" or
// "down"; the same ledger rules as question votes apply.
func (s *Service) VoteAnswer(ctx context.Context, rawAnswerID, direction string) (*models.AnswerView, error) {
	ctx, span := s.tracer.Start(ctx, "question.VoteAnswer")
	defer span.End()

	answerID, err := id.ParseAnswerID(rawAnswerID)
	if err != nil {
		return nil, err
	}
	dir, err := models.ParseAnswerVote(direction)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.UserID(ctx)
	if caller.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	updated, err := s.questions.MutateByAnswerID(ctx, answerID, func(question *models.Question) error {
		answer := question.FindAnswer(answerID)
		if answer == nil {
			return sentinel.ErrNotFound
		}
		answer.ApplyVote(caller.String(), dir)
		return nil
	})
	if err != nil {
		return nil, s.notFoundOrInternal(err, "answer")
	}

	if s.metrics != nil {
		s.metrics.IncrementVotesCast("answer")
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionVoteCast,
		UserID:  caller.String(),
		Subject: answerID.String(),
		Detail:  direction,
	})

	view := updated.FindAnswer(answerID).View()
	return &view, nil
}

// requireAuthor resolves the authenticated caller into a user record.
func (s *Service) requireAuthor(ctx context.Context) (authmodels.User, error) {
	caller := requestcontext.UserID(ctx)
	if caller.IsNil() {
		return authmodels.User{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	user, err := s.users.FindByID(ctx, caller.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return authmodels.User{}, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return authmodels.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) notFoundOrInternal(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, entity+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, event)
}
