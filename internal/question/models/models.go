// Package models defines the question aggregate: a question owns its
// answers and its vote ledgers; none of them exist outside it. JSON field
// names keep the wire format existing clients already consume.
package models

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

// Answer is owned by exactly one question. Votes use the same per-user
// ledger as questions and surface as a net score.
type Answer struct {
	ID         id.AnswerID
	Body       string
	AuthorID   id.UserID
	AuthorName string
	AnsweredOn time.Time
	UpVote     []string
	DownVote   []string
}

// Score is the answer's net vote count.
func (a *Answer) Score() int {
	return len(a.UpVote) - len(a.DownVote)
}

// Question is the aggregate root.
type Question struct {
	ID          id.QuestionID
	Title       string
	Description string
	Tags        []string
	AuthorID    id.UserID
	AuthorName  string
	AskedOn     time.Time
	UpVote      []string
	DownVote    []string
	NoOfAnswers int
	Answers     []Answer
}

// AppendAnswer adds an answer and recomputes the answer count from the list
// length, keeping the two in lockstep.
func (q *Question) AppendAnswer(answer Answer) {
	q.Answers = append(q.Answers, answer)
	q.NoOfAnswers = len(q.Answers)
}

// FindAnswer returns a pointer into the aggregate's answer list, or nil.
func (q *Question) FindAnswer(answerID id.AnswerID) *Answer {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i]
		}
	}
	return nil
}

// AskRequest is the POST /questions/ask body.
type AskRequest struct {
	QuestionTitle string   `json:"questionTitle"`
	Description   string   `json:"description"`
	QuestionTags  []string `json:"questionTags"`
}

// Validate checks required fields.
func (r *AskRequest) Validate() error {
	if strings.TrimSpace(r.QuestionTitle) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "question must have a title")
	}
	if strings.TrimSpace(r.Description) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "question must have a description")
	}
	return nil
}

// PostAnswerRequest is the POST /questions/{id}/answer body.
type PostAnswerRequest struct {
	Content string `json:"content"`
}

// QuestionView is the client-facing question projection. Vote sets surface
// as user-id lists so clients can render the caller's own vote state.
type QuestionView struct {
	ID          string       `json:"_id"`
	Title       string       `json:"questionTitle"`
	Description string       `json:"description"`
	Tags        []string     `json:"questionTags"`
	NoOfAnswers int          `json:"noOfAnswers"`
	UpVote      []string     `json:"upVote"`
	DownVote    []string     `json:"downVote"`
	AuthorID    string       `json:"userId"`
	AuthorName  string       `json:"userPosted"`
	AskedOn     time.Time    `json:"askedOn"`
	TimeAgo     string       `json:"timeAgo"`
	Answers     []AnswerView `json:"answer"`
}

// AnswerView is the client-facing answer projection.
type AnswerView struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Votes   int    `json:"votes"`
	TimeAgo string `json:"timeAgo"`
}

// View projects the aggregate for clients, computing display fields at read
// time.
func (q *Question) View() QuestionView {
	answers := make([]AnswerView, 0, len(q.Answers))
	for i := range q.Answers {
		answers = append(answers, q.Answers[i].View())
	}
	return QuestionView{
		ID:          q.ID.String(),
		Title:       q.Title,
		Description: q.Description,
		Tags:        emptyIfNil(q.Tags),
		NoOfAnswers: q.NoOfAnswers,
		UpVote:      emptyIfNil(q.UpVote),
		DownVote:    emptyIfNil(q.DownVote),
		AuthorID:    q.AuthorID.String(),
		AuthorName:  q.AuthorName,
		AskedOn:     q.AskedOn,
		TimeAgo:     humanize.Time(q.AskedOn),
		Answers:     answers,
	}
}

// View projects one answer.
func (a *Answer) View() AnswerView {
	return AnswerView{
		ID:      a.ID.String(),
		Content: a.Body,
		Author:  a.AuthorName,
		Votes:   a.Score(),
		TimeAgo: humanize.Time(a.AnsweredOn),
	}
}

// emptyIfNil keeps JSON lists as [] instead of null for nil slices.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
