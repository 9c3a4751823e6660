package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AnshRaj112/journal-backend/internal/models"
)

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c models.NewContact) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO contacts (user_id, contact_name, contact_email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.UserID, c.ContactName, c.ContactEmail)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return id, nil
}

// ListByUser returns the user's contacts, most recently added first.
func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]models.Contact, error) {
	contacts := []models.Contact{}
	err := r.db.SelectContext(ctx, &contacts, `
		SELECT id, user_id, contact_name, contact_email, created_at
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}
