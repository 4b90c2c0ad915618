package service

import (
	"context"
	"errors"
	"time"

	"bookshelf-api/internal/domain"
	"bookshelf-api/internal/repository"
)

var (
	// ErrBookNotFound indicates the referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrNotOwner is returned when a caller who is neither the owner nor an
	// admin attempts to mutate a book.
	ErrNotOwner = errors.New("not authorized to modify this book")
)

// BookInput carries the mutable fields of a book. Pointer fields are
// optional: nil leaves the current value alone on update and defaults to
// empty on create.
type BookInput struct {
	Title           string
	Author          string
	Genre           string
	PublicationDate time.Time
	Description     *string
	ISBN            *string
	PageCount       *int
	CoverImage      *string
}

// ListOptions selects and pages the catalog listing.
type ListOptions struct {
	Search string
	Genre  string
	Author string
	Page   int
	Limit  int
}

// BookPage is one page of catalog results with totals.
type BookPage struct {
	Books      []domain.Book
	Total      int64
	Page       int
	TotalPages int
}

const defaultPageLimit = 10

// BookService coordinates catalog operations and enforces ownership.
type BookService interface {
	Create(ctx context.Context, ownerID int64, input BookInput) (*domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, opts ListOptions) (*BookPage, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Book, error)
	Update(ctx context.Context, actor *domain.User, id int64, input BookInput) (*domain.Book, error)
	SetCoverImage(ctx context.Context, actor *domain.User, id int64, coverURL string) (*domain.Book, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type bookService struct {
	books repository.BookRepository
}

func NewBookService(books repository.BookRepository) BookService {
	return &bookService{books: books}
}

// Create persists a new book. The owner is always the authenticated
// caller; nothing in the input can override it.
func (s *bookService) Create(ctx context.Context, ownerID int64, input BookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		PublicationDate: input.PublicationDate,
		Description:     stringValue(input.Description),
		ISBN:            stringValue(input.ISBN),
		PageCount:       intValue(input.PageCount),
		CoverImage:      stringValue(input.CoverImage),
		UserID:          ownerID,
	}

	if _, err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) List(ctx context.Context, opts ListOptions) (*BookPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	filter := repository.BookFilter{
		Search: opts.Search,
		Genre:  opts.Genre,
		Author: opts.Author,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	books, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.books.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &BookPage{
		Books:      books,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *bookService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Book, error) {
	return s.books.ListByOwner(ctx, ownerID)
}

func (s *bookService) Update(ctx context.Context, actor *domain.User, id int64, input BookInput) (*domain.Book, error) {
	book, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Genre = input.Genre
	book.PublicationDate = input.PublicationDate
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
	if input.PageCount != nil {
		book.PageCount = *input.PageCount
	}
	if input.CoverImage != nil {
		book.CoverImage = *input.CoverImage
	}

	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) SetCoverImage(ctx context.Context, actor *domain.User, id int64, coverURL string) (*domain.Book, error) {
	book, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	book.CoverImage = coverURL
	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

// authorize fetches the book and applies the ownership-or-admin check.
func (s *bookService) authorize(ctx context.Context, actor *domain.User, id int64) (*domain.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(book) {
		return nil, ErrNotOwner
	}
	return book, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
