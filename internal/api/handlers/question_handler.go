package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/services"
)

// QuestionHandler handles question-related API requests.
type QuestionHandler struct {
	service services.QuestionServiceProvider
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(service services.QuestionServiceProvider) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// QuestionPayload is the body accepted by Create and Update.
type QuestionPayload struct {
	Category   string `json:"category" validate:"required,max=100"`
	Difficulty string `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Tags       string `json:"tags" validate:"max=500"`
}

func (p QuestionPayload) toModel() models.Question {
	return models.Question{
		Category:   p.Category,
		Difficulty: p.Difficulty,
		Question:   p.Question,
		Answer:     p.Answer,
		Tags:       p.Tags,
	}
}

type adminViewKey struct{}

// AdminView marks every request it wraps as asking for the unscoped catalog.
// Mount it behind auth.RequireRole(models.RoleAdmin).
func AdminView(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminViewKey{}, true)))
	})
}

// caller resolves the caller for a request. ?scope=all asks for the admin
// view and is rejected for everyone without ROLE_ADMIN.
func (h *QuestionHandler) caller(w http.ResponseWriter, r *http.Request) (services.Caller, bool) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return services.Caller{}, false
	}
	adminView, _ := r.Context().Value(adminViewKey{}).(bool)
	if adminView || r.URL.Query().Get("scope") == "all" {
		if !models.ContainsRole(caller.Roles, models.RoleAdmin) {
			writeError(w, r, services.ErrForbidden)
			return services.Caller{}, false
		}
		caller.AdminView = true
	}
	return caller, true
}

// GetAll lists the caller's questions, optionally filtered by category and
// difficulty.
func (h *QuestionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	filter := services.ListFilter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	if filter.Difficulty != "" && !models.ValidDifficulty(filter.Difficulty) {
		writeError(w, r, fmt.Errorf("%w: unknown difficulty %q", services.ErrValidation, filter.Difficulty))
		return
	}

	questions, err := h.service.List(r.Context(), caller, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Get retrieves a single question by its ID.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	question, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// GetByCategory lists the caller's questions in one category.
func (h *QuestionHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	questions, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Search matches the keyword against question text, answer and tags.
func (h *QuestionHandler) Search(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	questions, err := h.service.Search(r.Context(), r.URL.Query().Get("keyword"), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Count returns the number of questions visible to the caller as a bare
// JSON number.
func (h *QuestionHandler) Count(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	n, err := h.service.Count(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Create handles the creation of a new question.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var payload QuestionPayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	question, err := h.service.Create(r.Context(), payload.toModel(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

// Update replaces the editable fields of an existing question.
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var payload QuestionPayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	question, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload.toModel(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// Delete removes a question.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), caller); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
