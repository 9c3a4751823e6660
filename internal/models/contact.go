package models

import "time"

// Contact is a person saved to a user's contact list
type Contact struct {
	ID           int64     `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	ContactName  string    `db:"contact_name" json:"contact_name"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AddContactRequest is the body of POST /contacts/add.
type AddContactRequest struct {
	UserID       string `json:"user_id"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
}

// NewContact is a validated contact: name trimmed, email lower-cased.
type NewContact struct {
	UserID       string
	ContactName  string
	ContactEmail string
}
