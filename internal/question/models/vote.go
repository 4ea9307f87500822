package models

import dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"

// Direction is a validated vote direction.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseQuestionVote maps the question route's vote values onto a Direction.
func ParseQuestionVote(value string) (Direction, error) {
	switch value {
	case "upVote":
		return DirectionUp, nil
	case "downVote":
		return DirectionDown, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "value must be upVote or downVote")
	}
}

// ParseAnswerVote maps the answer route's vote values onto a Direction.
func ParseAnswerVote(value string) (Direction, error) {
	switch Direction(value) {
	case DirectionUp, DirectionDown:
		return Direction(value), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid vote direction")
	}
}

// toggleVote applies the one-active-vote rule to a pair of vote sets:
//  1. a vote in the opposite direction is cleared first,
//  2. repeating the same direction removes the vote (toggle off),
//  3. otherwise the voter joins the target set.
//
// Membership is mutually exclusive: a user id is never in both sets.
func toggleVote(up, down []string, userID string, dir Direction) (newUp, newDown []string) {
	target, opposite := up, down
	if dir == DirectionDown {
		target, opposite = down, up
	}

	opposite = removeVoter(opposite, userID)
	if containsVoter(target, userID) {
		target = removeVoter(target, userID)
	} else {
		target = append(target, userID)
	}

	if dir == DirectionDown {
		return opposite, target
	}
	return target, opposite
}

// ApplyVote toggles the caller's vote on the question.
func (q *Question) ApplyVote(userID string, dir Direction) {
	q.UpVote, q.DownVote = toggleVote(q.UpVote, q.DownVote, userID, dir)
}

// ApplyVote toggles the caller's vote on the answer.
func (a *Answer) ApplyVote(userID string, dir Direction) {
	a.UpVote, a.DownVote = toggleVote(a.UpVote, a.DownVote, userID, dir)
}

func containsVoter(voters []string, userID string) bool {
	for _, v := range voters {
		if v == userID {
			return true
		}
	}
	return false
}

func removeVoter(voters []string, userID string) []string {
	out := voters[:0]
	for _, v := range voters {
		if v != userID {
			out = append(out, v)
		}
	}
	return out
}
