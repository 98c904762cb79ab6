package models

import "time"

// Review is one reader's rating and optional comment for a book.
// Authorship is anonymous: UserID is free-form and optional.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
