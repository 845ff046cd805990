package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupBooksTestDB(t *testing.T) (*database.Database, *books.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, books.NewRepository(db.DB), cleanup
}

func newBooksRouter(store BookStore) *gin.Engine {
	controller := NewBooksController(store)
	router := gin.New()
	router.GET("/api/books", controller.ListBooks)
	router.POST("/api/books", controller.CreateBook)
	router.PUT("/api/books/:id", controller.UpdateBook)
	router.DELETE("/api/books/:id", controller.DeleteBook)
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestBooksController_ListBooks(t *testing.T) {
	t.Run("returns empty array when no books", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "GET", "/api/books", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("returns books in insertion order", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		doJSON(router, "POST", "/api/books", `{"title":"Dune","year":1965,"category":"SciFi","rating":5}`)
		doJSON(router, "POST", "/api/books", `{"title":"Emma","year":1815,"category":"Classic","rating":4}`)

		w := doJSON(router, "GET", "/api/books", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "Dune", list[0].Title)
		assert.Equal(t, "Emma", list[1].Title)
	})

	t.Run("returns 500 with generic body when store fails", func(t *testing.T) {
		w := doJSON(newBooksRouter(failingStore{}), "GET", "/api/books", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates book with id and favorite false", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books",
			`{"title":"Dune","year":1965,"category":"SciFi","rating":5,"favorite":true}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var book map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.NotEmpty(t, book["id"])
		assert.Equal(t, "Dune", book["title"])
		assert.Equal(t, float64(1965), book["year"])
		assert.Equal(t, "SciFi", book["category"])
		assert.Equal(t, float64(5), book["rating"])
		assert.Equal(t, false, book["favorite"])
	})

	t.Run("rejects rating out of range", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "POST", "/api/books", `{"title":"Dune","year":1965,"category":"SciFi","rating":9}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"rating must be between 1 and 5"}`, w.Body.String())

		list, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books", `{"year":1965,"category":"SciFi","rating":3}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"title is required"}`, w.Body.String())
	})

	t.Run("accepts numeric strings for year and rating", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books",
			`{"title":"Dune","year":"1965","category":"SciFi","rating":" 5 "}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, 1965, book.Year)
		assert.Equal(t, 5, book.Rating)
	})

	t.Run("rejects non-numeric year", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books",
			`{"title":"Dune","year":"nineteen","category":"SciFi","rating":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
	})

	t.Run("rejects missing year", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books",
			`{"title":"Dune","year":null,"category":"SciFi","rating":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"year is required"}`, w.Body.String())
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "POST", "/api/books", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
	})
}

func TestBooksController_UpdateBook(t *testing.T) {
	t.Run("replaces fields and favorite", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		created, err := repo.Create(context.Background(), books.Fields{Title: "Dune", Year: intPtr(1965), Category: "SciFi", Rating: 5})
		require.NoError(t, err)

		w := doJSON(router, "PUT", "/api/books/"+created.ID,
			`{"title":"Dune","year":1965,"category":"SciFi","rating":4,"favorite":true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, created.ID, book.ID)
		assert.Equal(t, 4, book.Rating)
		assert.True(t, book.Favorite)
	})

	t.Run("accepts numeric string year", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		created, err := repo.Create(context.Background(), books.Fields{Title: "Dune", Year: intPtr(1965), Category: "SciFi", Rating: 5})
		require.NoError(t, err)

		w := doJSON(router, "PUT", "/api/books/"+created.ID,
			`{"title":"Dune Messiah","year":"1969","category":"SciFi","rating":"4","favorite":false}`)
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := repo.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", stored.Title)
		assert.Equal(t, 1969, stored.Year)
		assert.Equal(t, 4, stored.Rating)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		w := doJSON(newBooksRouter(repo), "PUT", "/api/books/missing",
			`{"title":"Dune","year":1965,"category":"SciFi","rating":4}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()

		created, err := repo.Create(context.Background(), books.Fields{Title: "Dune", Year: intPtr(1965), Category: "SciFi", Rating: 5})
		require.NoError(t, err)

		w := doJSON(newBooksRouter(repo), "PUT", "/api/books/"+created.ID,
			`{"title":"Dune","year":1965,"category":"SciFi","rating":0}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		stored, err := repo.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Rating)
	})

	t.Run("returns 500 when store fails", func(t *testing.T) {
		w := doJSON(newBooksRouter(failingStore{}), "PUT", "/api/books/x",
			`{"title":"Dune","year":1965,"category":"SciFi","rating":4}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk")
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	t.Run("deletes existing book then returns 404", func(t *testing.T) {
		_, repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		created, err := repo.Create(context.Background(), books.Fields{Title: "Dune", Year: intPtr(1965), Category: "SciFi", Rating: 5})
		require.NoError(t, err)

		w := doJSON(router, "DELETE", "/api/books/"+created.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())

		w = doJSON(router, "DELETE", "/api/books/"+created.ID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())

		w = doJSON(router, "GET", "/api/books", "")
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func intPtr(v int) *int {
	return &v
}

// failingStore simulates an unreachable store.
type failingStore struct{}

var errDiskIO = &books.StoreUnavailableError{Op: "test", Err: errors.New("disk I/O error")}

func (failingStore) List(ctx context.Context) ([]entities.Book, error) {
	return nil, errDiskIO
}

func (failingStore) Create(ctx context.Context, fields books.Fields) (*entities.Book, error) {
	return nil, errDiskIO
}

func (failingStore) Update(ctx context.Context, id string, fields books.Fields, favorite bool) (*entities.Book, error) {
	return nil, errDiskIO
}

func (failingStore) Delete(ctx context.Context, id string) error {
	return errDiskIO
}
