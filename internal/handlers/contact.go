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

type ContactStore interface {
	Create(ctx context.Context, c models.NewContact) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Contact, error)
}

// ContactListResponse represents the response for listing a user's contacts
type ContactListResponse struct {
	Success  bool             `json:"success"`
	Contacts []models.Contact `json:"contacts"`
}

type ContactHandler struct {
	contacts ContactStore
}

func NewContactHandler(contacts ContactStore) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Add handles POST /contacts/add
func (h *ContactHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddContactRequest
	var contact models.NewContact
	var id int64
	err := runSteps(
		func() error { return validate.DecodeJSON(r, &req) },
		func() (err error) {
			contact, err = validate.Contact(req)
			return err
		},
		func() error { return middleware.RequireOwner(r.Context(), contact.UserID) },
		func() (err error) {
			id, err = h.contacts.Create(r.Context(), contact)
			return err
		},
	)
	if err != nil {
		respond.Error(w, r, err, "Failed to add contact")
		return
	}
	respond.JSON(w, r, http.StatusCreated, CreatedResponse{Success: true, ID: id})
}

// ListByUser handles GET /contacts/user/{id}
func (h *ContactHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	var userID string
	var contacts []models.Contact
	err := runSteps(
		func() (err error) {
			userID, err = validate.UserIDParam(chi.URLParam(r, "id"))
			return err
		},
		func() error { return middleware.RequireOwner(r.Context(), userID) },
		func() (err error) {
			contacts, err = h.contacts.ListByUser(r.Context(), userID)
			return err
		},
	)
	if err != nil {
		respond.Error(w, r, err, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	respond.JSON(w, r, http.StatusOK, ContactListResponse{Success: true, Contacts: contacts})
}
