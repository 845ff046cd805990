package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore defines the catalog operations the API exposes.
type BookStore interface {
	List(ctx context.Context) ([]entities.Book, error)
	Create(ctx context.Context, fields books.Fields) (*entities.Book, error)
	Update(ctx context.Context, id string, fields books.Fields, favorite bool) (*entities.Book, error)
	Delete(ctx context.Context, id string) error
}

type createBookRequest struct {
	Title    string      `json:"title"`
	Year     *numericInt `json:"year"`
	Category string      `json:"category"`
	Rating   numericInt  `json:"rating"`
}

func (r createBookRequest) fields() books.Fields {
	return books.Fields{Title: r.Title, Year: r.Year.intPointer(), Category: r.Category, Rating: int(r.Rating)}
}

type updateBookRequest struct {
	createBookRequest
	Favorite bool `json:"favorite"`
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// ListBooks returns the whole collection in store order.
// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	all, err := bc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, all)
}

// CreateBook stores a new book. Favorite is always false on create.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.store.Create(c.Request.Context(), req.fields())
	if err != nil {
		if books.IsValidation(err) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	respondCreated(c, book)
}

// UpdateBook replaces title, year, category, rating and favorite together.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.store.Update(c.Request.Context(), c.Param("id"), req.fields(), req.Favorite)
	if err != nil {
		respondStoreError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book permanently.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	if err := bc.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "delete book")
		return
	}
	respondSuccess(c, "Book deleted successfully")
}
