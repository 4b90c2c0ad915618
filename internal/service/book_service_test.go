package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookshelf-api/internal/domain"
	"bookshelf-api/internal/repository"
)

type mockBookRepository struct {
	createFunc      func(ctx context.Context, book *domain.Book) (int64, error)
	getFunc         func(ctx context.Context, id int64) (*domain.Book, error)
	listFunc        func(ctx context.Context, filter repository.BookFilter) ([]domain.Book, error)
	countFunc       func(ctx context.Context, filter repository.BookFilter) (int64, error)
	listByOwnerFunc func(ctx context.Context, userID int64) ([]domain.Book, error)
	updateFunc      func(ctx context.Context, book *domain.Book) error
	deleteFunc      func(ctx context.Context, id int64) error
}

func (m *mockBookRepository) Init(ctx context.Context) error { return nil }

func (m *mockBookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, book)
	}
	return 0, errors.New("not implemented")
}

func (m *mockBookRepository) Get(ctx context.Context, id int64) (*domain.Book, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) List(ctx context.Context, filter repository.BookFilter) ([]domain.Book, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) Count(ctx context.Context, filter repository.BookFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, errors.New("not implemented")
}

func (m *mockBookRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Book, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, book)
	}
	return errors.New("not implemented")
}

func (m *mockBookRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func testInput() BookInput {
	return BookInput{
		Title:           "Dune",
		Author:          "Herbert",
		Genre:           "SciFi",
		PublicationDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateForcesOwner(t *testing.T) {
	var created *domain.Book
	repo := &mockBookRepository{
		createFunc: func(ctx context.Context, book *domain.Book) (int64, error) {
			created = book
			book.ID = 1
			return 1, nil
		},
	}
	books := NewBookService(repo)

	book, err := books.Create(context.Background(), 7, testInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.UserID != 7 {
		t.Errorf("stored owner = %d, want 7", created.UserID)
	}
	if book.Title != "Dune" || book.Author != "Herbert" || book.Genre != "SciFi" {
		t.Errorf("unexpected fields: %+v", book)
	}
}

func TestOwnershipMatrix(t *testing.T) {
	owner := &domain.User{ID: 7, Role: domain.RoleUser}
	admin := &domain.User{ID: 99, Role: domain.RoleAdmin}
	other := &domain.User{ID: 8, Role: domain.RoleUser}

	tests := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{"owner allowed", owner, nil},
		{"admin allowed regardless of owner", admin, nil},
		{"other user forbidden", other, ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name+" update", func(t *testing.T) {
			repo := &mockBookRepository{
				getFunc: func(ctx context.Context, id int64) (*domain.Book, error) {
					return &domain.Book{ID: id, UserID: 7}, nil
				},
				updateFunc: func(ctx context.Context, book *domain.Book) error { return nil },
			}
			books := NewBookService(repo)

			_, err := books.Update(context.Background(), tt.actor, 1, testInput())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})

		t.Run(tt.name+" delete", func(t *testing.T) {
			deleted := false
			repo := &mockBookRepository{
				getFunc: func(ctx context.Context, id int64) (*domain.Book, error) {
					return &domain.Book{ID: id, UserID: 7}, nil
				},
				deleteFunc: func(ctx context.Context, id int64) error {
					deleted = true
					return nil
				},
			}
			books := NewBookService(repo)

			err := books.Delete(context.Background(), tt.actor, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && deleted {
				t.Error("forbidden caller still deleted the book")
			}
		})
	}
}

func TestUpdateMissingBook(t *testing.T) {
	repo := &mockBookRepository{
		getFunc: func(ctx context.Context, id int64) (*domain.Book, error) {
			return nil, repository.ErrNotFound
		},
	}
	books := NewBookService(repo)

	actor := &domain.User{ID: 1, Role: domain.RoleAdmin}
	if _, err := books.Update(context.Background(), actor, 404, testInput()); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Update() error = %v, want ErrBookNotFound", err)
	}
}

func TestUpdatePreservesOmittedOptionalFields(t *testing.T) {
	stored := &domain.Book{ID: 1, UserID: 7, Description: "kept", ISBN: "kept-isbn", PageCount: 412}
	repo := &mockBookRepository{
		getFunc:    func(ctx context.Context, id int64) (*domain.Book, error) { return stored, nil },
		updateFunc: func(ctx context.Context, book *domain.Book) error { return nil },
	}
	books := NewBookService(repo)

	cleared := ""
	input := testInput()
	input.Description = &cleared

	book, err := books.Update(context.Background(), &domain.User{ID: 7, Role: domain.RoleUser}, 1, input)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if book.Description != "" {
		t.Errorf("description = %q, want cleared", book.Description)
	}
	if book.ISBN != "kept-isbn" || book.PageCount != 412 {
		t.Errorf("omitted optional fields were not preserved: %+v", book)
	}
}

func TestListPagination(t *testing.T) {
	tests := []struct {
		name           string
		opts           ListOptions
		total          int64
		returned       int
		wantPage       int
		wantTotalPages int
		wantOffset     int
		wantLimit      int
	}{
		{"defaults", ListOptions{}, 25, 10, 1, 3, 0, 10},
		{"second page", ListOptions{Page: 2, Limit: 10}, 25, 10, 2, 3, 10, 10},
		{"exact division", ListOptions{Page: 1, Limit: 5}, 20, 5, 1, 4, 0, 5},
		{"page beyond range is empty", ListOptions{Page: 99, Limit: 10}, 25, 0, 99, 3, 980, 10},
		{"zero results", ListOptions{}, 0, 0, 1, 0, 0, 10},
		{"negative page normalizes", ListOptions{Page: -3}, 5, 5, 1, 1, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter repository.BookFilter
			repo := &mockBookRepository{
				listFunc: func(ctx context.Context, filter repository.BookFilter) ([]domain.Book, error) {
					gotFilter = filter
					return make([]domain.Book, tt.returned), nil
				},
				countFunc: func(ctx context.Context, filter repository.BookFilter) (int64, error) {
					return tt.total, nil
				},
			}
			books := NewBookService(repo)

			page, err := books.List(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if page.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.TotalPages != tt.wantTotalPages {
				t.Errorf("totalPages = %d, want %d", page.TotalPages, tt.wantTotalPages)
			}
			if page.Total != tt.total {
				t.Errorf("total = %d, want %d", page.Total, tt.total)
			}
			if gotFilter.Offset != tt.wantOffset || gotFilter.Limit != tt.wantLimit {
				t.Errorf("filter offset/limit = %d/%d, want %d/%d", gotFilter.Offset, gotFilter.Limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}
