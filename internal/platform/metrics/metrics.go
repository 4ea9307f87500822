package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for forum activity.
type Metrics struct {
	UsersCreated   prometheus.Counter
	QuestionsAsked prometheus.Counter
	AnswersPosted  prometheus.Counter
	VotesCast      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stackit_users_created_total",
			Help: "Total number of users created in the system",
		}),
		QuestionsAsked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stackit_questions_asked_total",
			Help: "Total number of questions asked",
		}),
		AnswersPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stackit_answers_posted_total",
			Help: "Total number of answers posted",
		}),
		VotesCast: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stackit_votes_cast_total",
			Help: "Total vote requests applied, by target entity",
		}, []string{"target"}),
	}
}

// IncrementUsersCreated increments the users created counter by 1.
func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

// IncrementQuestionsAsked increments the questions asked counter by 1.
func (m *Metrics) IncrementQuestionsAsked() {
	m.QuestionsAsked.Inc()
}

// IncrementAnswersPosted increments the answers posted counter by 1.
func (m *Metrics) IncrementAnswersPosted() {
	m.AnswersPosted.Inc()
}

// IncrementVotesCast records a vote applied against a question or answer.
func (m *Metrics) IncrementVotesCast(target string) {
	m.VotesCast.WithLabelValues(target).Inc()
}
