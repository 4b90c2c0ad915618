package repository

import (
	"context"

	"bookshelf-api/internal/domain"
)

// BookFilter narrows List and Count results. Zero values disable the
// corresponding clause.
type BookFilter struct {
	Search string // full-text match across title, author and genre
	Genre  string // exact genre match
	Author string // case-insensitive substring match on author
	Offset int
	Limit  int
}

// BookRepository exposes persistence operations for Book aggregates.
type BookRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, book *domain.Book) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, filter BookFilter) ([]domain.Book, error)
	Count(ctx context.Context, filter BookFilter) (int64, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
}
