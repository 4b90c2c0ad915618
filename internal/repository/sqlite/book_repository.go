package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf-api/internal/domain"
	"bookshelf-api/internal/repository"
)

var createBooksSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	genre TEXT NOT NULL,
	publication_date DATETIME NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	isbn TEXT NOT NULL DEFAULT '',
	page_count INTEGER NOT NULL DEFAULT 0,
	cover_image TEXT NOT NULL DEFAULT '',
	user_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_books_user_id ON books(user_id);`,
	// FTS5 index over the searchable columns, kept in sync by triggers.
	`CREATE VIRTUAL TABLE IF NOT EXISTS books_fts USING fts5(
	title, author, genre, content='books', content_rowid='id'
);`,
	`CREATE TRIGGER IF NOT EXISTS trg_books_ai AFTER INSERT ON books BEGIN
	INSERT INTO books_fts(rowid, title, author, genre) VALUES(new.id, new.title, new.author, new.genre);
END;`,
	`CREATE TRIGGER IF NOT EXISTS trg_books_ad AFTER DELETE ON books BEGIN
	INSERT INTO books_fts(books_fts, rowid, title, author, genre) VALUES('delete', old.id, old.title, old.author, old.genre);
END;`,
	`CREATE TRIGGER IF NOT EXISTS trg_books_au AFTER UPDATE ON books BEGIN
	INSERT INTO books_fts(books_fts, rowid, title, author, genre) VALUES('delete', old.id, old.title, old.author, old.genre);
	INSERT INTO books_fts(rowid, title, author, genre) VALUES(new.id, new.title, new.author, new.genre);
END;`,
}

const bookColumns = `b.id, b.title, b.author, b.genre, b.publication_date, b.description, b.isbn, b.page_count, b.cover_image, b.user_id, b.created_at, b.updated_at`

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Init(ctx context.Context) error {
	for _, stmt := range createBooksSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create books schema: %w", err)
		}
	}
	return nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO books (title, author, genre, publication_date, description, isbn, page_count, cover_image, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationDate.UTC(),
		book.Description,
		book.ISBN,
		book.PageCount,
		book.CoverImage,
		book.UserID,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("book last insert id: %w", err)
	}
	book.ID = id
	return id, nil
}

func (r *BookRepository) Get(ctx context.Context, id int64) (*domain.Book, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+bookColumns+`
FROM books b
WHERE b.id = ?`,
		id,
	)
	return scanBook(row)
}

func (r *BookRepository) List(ctx context.Context, filter repository.BookFilter) ([]domain.Book, error) {
	where, args := buildBookWhere(filter)
	query := `
SELECT ` + bookColumns + `
FROM books b` + where + `
ORDER BY b.created_at DESC, b.id DESC`
	if filter.Limit > 0 {
		query += `
LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *BookRepository) Count(ctx context.Context, filter repository.BookFilter) (int64, error) {
	where, args := buildBookWhere(filter)
	var total int64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM books b`+where,
		args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

func (r *BookRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+bookColumns+`
FROM books b
WHERE b.user_id = ?
ORDER BY b.created_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query books by owner: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	book.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE books
SET title=?, author=?, genre=?, publication_date=?, description=?, isbn=?, page_count=?, cover_image=?, updated_at=?
WHERE id=?`,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationDate.UTC(),
		book.Description,
		book.ISBN,
		book.PageCount,
		book.CoverImage,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("book update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("book delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func buildBookWhere(filter repository.BookFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses, `b.id IN (SELECT rowid FROM books_fts WHERE books_fts MATCH ?)`)
		args = append(args, ftsQuery(search))
	}
	if filter.Genre != "" {
		clauses = append(clauses, `b.genre = ?`)
		args = append(args, filter.Genre)
	}
	if filter.Author != "" {
		// sqlite LIKE is case-insensitive for ASCII
		clauses = append(clauses, `b.author LIKE ?`)
		args = append(args, "%"+filter.Author+"%")
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return `
WHERE ` + strings.Join(clauses, " AND "), args
}

// ftsQuery quotes every term so that user input is matched literally
// instead of being parsed as FTS5 query syntax.
func ftsQuery(search string) string {
	terms := strings.Fields(search)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

func scanBook(scanner interface {
	Scan(dest ...any) error
}) (*domain.Book, error) {
	var book domain.Book
	if err := scanner.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.PublicationDate,
		&book.Description,
		&book.ISBN,
		&book.PageCount,
		&book.CoverImage,
		&book.UserID,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &book, nil
}
