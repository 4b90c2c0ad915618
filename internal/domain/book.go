package domain

import "time"

// Book represents a catalog entry owned by exactly one user. The owner
// is fixed at creation and never changes.
type Book struct {
	ID              int64
	Title           string
	Author          string
	Genre           string
	PublicationDate time.Time
	Description     string
	ISBN            string
	PageCount       int
	CoverImage      string
	UserID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
