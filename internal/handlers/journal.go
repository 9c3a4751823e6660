package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/journal-backend/internal/middleware"
	"github.com/AnshRaj112/journal-backend/internal/models"
	"github.com/AnshRaj112/journal-backend/internal/respond"
	"github.com/AnshRaj112/journal-backend/internal/validate"
)

type JournalStore interface {
	Create(ctx context.Context, e models.NewJournalEntry) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error)
}

// CreatedResponse is returned after inserting a row.
type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type JournalListResponse struct {
	Success bool                  `json:"success"`
	Entries []models.JournalEntry `json:"entries"`
}

type JournalHandler struct {
	entries JournalStore
}

func NewJournalHandler(entries JournalStore) *JournalHandler {
	return &JournalHandler{entries: entries}
}

// CreateEntry handles POST /journal/entry. The body's user_id must be the caller.
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJournalEntryRequest
	var entry models.NewJournalEntry
	var id int64
	err := runSteps(
		func() error { return validate.DecodeJSON(r, &req) },
		func() (err error) {
			entry, err = validate.JournalEntry(req)
			return err
		},
		func() error { return middleware.RequireOwner(r.Context(), entry.UserID) },
		func() (err error) {
			id, err = h.entries.Create(r.Context(), entry)
			return err
		},
	)
	if err != nil {
		respond.Error(w, r, err, "Failed to create journal entry")
		return
	}
	respond.JSON(w, r, http.StatusCreated, CreatedResponse{Success: true, ID: id})
}

// ListByUser handles GET /journal/user/{id}, newest entries first.
func (h *JournalHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	var userID string
	var entries []models.JournalEntry
	err := runSteps(
		func() (err error) {
			userID, err = validate.UserIDParam(chi.URLParam(r, "id"))
			return err
		},
		func() error { return middleware.RequireOwner(r.Context(), userID) },
		func() (err error) {
			entries, err = h.entries.ListByUser(r.Context(), userID)
			return err
		},
	)
	if err != nil {
		respond.Error(w, r, err, "Failed to fetch journal entries")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	respond.JSON(w, r, http.StatusOK, JournalListResponse{Success: true, Entries: entries})
}
