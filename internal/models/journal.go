package models

import (
	"encoding/json"
	"time"
)

// JournalEntry is a mood journal entry owned by a user
type JournalEntry struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	EntryText  string    `db:"entry_text" json:"entry_text"`
	MoodRating int       `db:"mood_rating" json:"mood_rating"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
}

// CreateJournalEntryRequest is the body of POST /journal/entry. MoodRating
// and Timestamp stay raw so that validation can coerce them.
type CreateJournalEntryRequest struct {
	UserID     string          `json:"user_id"`
	EntryText  string          `json:"entry_text"`
	MoodRating json.RawMessage `json:"mood_rating"`
	Timestamp  json.RawMessage `json:"timestamp,omitempty"`
}

// NewJournalEntry is a validated entry ready to insert. A nil Timestamp
// means the row takes the insert time.
type NewJournalEntry struct {
	UserID     string
	EntryText  string
	MoodRating int
	Timestamp  *time.Time
}
