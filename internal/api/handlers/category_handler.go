package handlers

import (
	"net/http"

	"github.com/isdelr/interview-vault-be/internal/services"
)

// CategoryHandler serves the category list.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetAll returns all categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
