package validate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
	"github.com/AnshRaj112/journal-backend/internal/models"
)

// maxBodyBytes bounds request bodies; every payload here is a handful of fields.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// zero-valued so that field rules report what is missing. A field holding
// the wrong JSON type is left zero and the rest of the body still decodes,
// so the field rules reject it in their usual order.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil
		}
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// JournalEntry validates a journal entry body, field by field in a fixed order.
func JournalEntry(req models.CreateJournalEntryRequest) (models.NewJournalEntry, error) {
	userID, err := UUID("user_id", req.UserID)
	if err != nil {
		return models.NewJournalEntry{}, err
	}
	if err := RequiredText("entry_text", req.EntryText); err != nil {
		return models.NewJournalEntry{}, err
	}
	mood, err := MoodRating(req.MoodRating)
	if err != nil {
		return models.NewJournalEntry{}, err
	}
	ts, err := OptionalTimestamp(req.Timestamp)
	if err != nil {
		return models.NewJournalEntry{}, err
	}
	return models.NewJournalEntry{
		UserID:     userID,
		EntryText:  req.EntryText,
		MoodRating: mood,
		Timestamp:  ts,
	}, nil
}

// Contact validates a contact body and normalizes it for storage.
func Contact(req models.AddContactRequest) (models.NewContact, error) {
	userID, err := UUID("user_id", req.UserID)
	if err != nil {
		return models.NewContact{}, err
	}
	if err := RequiredText("contact_name", req.ContactName); err != nil {
		return models.NewContact{}, err
	}
	if err := Email("contact_email", req.ContactEmail); err != nil {
		return models.NewContact{}, err
	}
	return models.NewContact{
		UserID:       userID,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.ToLower(req.ContactEmail),
	}, nil
}

// UserIDParam validates the owner id taken from a path segment.
func UserIDParam(id string) (string, error) {
	return UUID("id", id)
}
