package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AnshRaj112/journal-backend/internal/models"
)

type JournalRepository struct {
	db *sqlx.DB
}

func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts an entry and returns its id. Without a timestamp the row
// takes the insert time.
func (r *JournalRepository) Create(ctx context.Context, e models.NewJournalEntry) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO journal_entries (user_id, entry_text, mood_rating, timestamp)
		VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()))
		RETURNING id
	`, e.UserID, e.EntryText, e.MoodRating, e.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("insert journal entry: %w", err)
	}
	return id, nil
}

// ListByUser returns the user's entries, newest first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, entry_text, mood_rating, timestamp
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}
