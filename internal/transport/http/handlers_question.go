package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KoustavBera/Odoo25/internal/question/models"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/platform/httputil"
)

// QuestionService is the slice of the question domain the handlers need.
type QuestionService interface {
	Ask(ctx context.Context, req *models.AskRequest) (*models.QuestionView, error)
	List(ctx context.Context) ([]models.QuestionView, error)
	Get(ctx context.Context, questionID string) (*models.QuestionView, error)
	Delete(ctx context.Context, questionID string) error
	Vote(ctx context.Context, questionID, value string) (*models.QuestionView, error)
	ListAnswers(ctx context.Context, questionID string) ([]models.AnswerView, error)
	PostAnswer(ctx context.Context, questionID string, req *models.PostAnswerRequest) (*models.AnswerView, error)
	VoteAnswer(ctx context.Context, answerID, direction string) (*models.AnswerView, error)
}

// QuestionHandler serves the question and answer routes.
type QuestionHandler struct {
	questions QuestionService
}

func NewQuestionHandler(questions QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.questions.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *QuestionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.questions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *QuestionHandler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	view, err := h.questions.Ask(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"result": view})
}

func (h *QuestionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.questions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "question deleted successfully"})
}

type voteRequest struct {
	Value string `json:"value"`
}

func (h *QuestionHandler) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	if _, err := h.questions.Vote(r.Context(), chi.URLParam(r, "id"), req.Value); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "voted successfully"})
}

func (h *QuestionHandler) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.questions.ListAnswers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, answers)
}

func (h *QuestionHandler) handlePostAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.PostAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	view, err := h.questions.PostAnswer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, view)
}

type answerVoteRequest struct {
	Direction string `json:"direction"`
}

func (h *QuestionHandler) handleVoteAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	view, err := h.questions.VoteAnswer(r.Context(), chi.URLParam(r, "answerId"), req.Direction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "voted successfully",
		"votes":   view.Votes,
	})
}
