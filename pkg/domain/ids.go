// Package domain holds shared domain primitives: typed identifiers and the
// closed role set. Typed IDs keep user/question/answer identifiers from being
// swapped at compile time and enforce validity at parse time.
package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

// UserID identifies a registered user.
type UserID uuid.UUID

// QuestionID identifies a question aggregate.
type QuestionID uuid.UUID

// AnswerID identifies an answer embedded in a question.
type AnswerID uuid.UUID

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewQuestionID returns a fresh random question ID.
func NewQuestionID() QuestionID { return QuestionID(uuid.New()) }

// NewAnswerID returns a fresh random answer ID.
func NewAnswerID() AnswerID { return AnswerID(uuid.New()) }

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id QuestionID) String() string { return uuid.UUID(id).String() }
func (id AnswerID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id QuestionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AnswerID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// ParseUserID validates and converts a string into a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseQuestionID validates and converts a string into a QuestionID.
func ParseQuestionID(s string) (QuestionID, error) {
	u, err := parseUUID(s, "question id")
	return QuestionID(u), err
}

// ParseAnswerID validates and converts a string into an AnswerID.
func ParseAnswerID(s string) (AnswerID, error) {
	u, err := parseUUID(s, "answer id")
	return AnswerID(u), err
}

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}
