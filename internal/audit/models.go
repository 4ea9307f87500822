package audit

import "time"

// Action names for forum activity events.
const (
	ActionUserSignedUp    = "user_signed_up"
	ActionUserLoggedIn    = "user_logged_in"
	ActionUserLoggedOut   = "user_logged_out"
	ActionQuestionAsked   = "question_asked"
	ActionQuestionDeleted = "question_deleted"
	ActionAnswerPosted    = "answer_posted"
	ActionVoteCast        = "vote_cast"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	UserID    string    `json:"userId,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	OS        string    `json:"os,omitempty"`
}
