// Package books provides the catalog store: list, create, update and delete
// of Book records on top of GORM.
//
// Every operation returns one of the store error types on failure:
// *ValidationError, *NotFoundError or *StoreUnavailableError.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	year := 1965
//	book, err := repo.Create(ctx, books.Fields{Title: "Dune", Year: &year, Category: "SciFi", Rating: 5})
package books

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	books := make([]entities.Book, 0)
	if err := r.db.WithContext(ctx).Order("rowid ASC").Find(&books).Error; err != nil {
		return nil, &StoreUnavailableError{Op: "list", Err: err}
	}
	return books, nil
}

// Get retrieves a single book by id.
func (r *Repository) Get(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StoreUnavailableError{Op: "get", Err: err}
	}
	return &book, nil
}

// Create validates the fields and stores a new, non-favorite book.
func (r *Repository) Create(ctx context.Context, fields Fields) (*entities.Book, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:    fields.Title,
		Year:     *fields.Year,
		Category: fields.Category,
		Rating:   fields.Rating,
		Favorite: false,
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, translateWriteError("create", err)
	}
	return book, nil
}

// Insert stores a fully populated book as-is, keeping its id and favorite
// flag. It is used for seeding.
func (r *Repository) Insert(ctx context.Context, book *entities.Book) error {
	fields := Fields{Title: book.Title, Year: &book.Year, Category: book.Category, Rating: book.Rating}
	if err := fields.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return translateWriteError("insert", err)
	}
	return nil
}

// Update replaces all mutable fields of the book with the given id.
// Fields are validated before the record is looked up.
func (r *Repository) Update(ctx context.Context, id string, fields Fields, favorite bool) (*entities.Book, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Book{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":    fields.Title,
			"year":     *fields.Year,
			"category": fields.Category,
			"rating":   fields.Rating,
			"favorite": favorite,
		})
	if result.Error != nil {
		return nil, translateWriteError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{ID: id}
	}

	return r.Get(ctx, id)
}

// Delete removes the book with the given id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return &StoreUnavailableError{Op: "delete", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, &StoreUnavailableError{Op: "count", Err: err}
	}
	return count, nil
}

// translateWriteError turns constraint failures raised by SQLite into
// validation errors; everything else is a store failure.
func translateWriteError(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "CHECK constraint failed"):
		return &ValidationError{Field: "rating", Rule: "range"}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		field := msg[strings.LastIndex(msg, ".")+1:]
		return &ValidationError{Field: field, Rule: "required"}
	}
	return &StoreUnavailableError{Op: op, Err: err}
}
