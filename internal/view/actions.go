package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/client"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	// ErrNotConfirmed is returned when a delete is attempted without the
	// user's explicit confirmation.
	ErrNotConfirmed = errors.New("delete not confirmed")

	// ErrUnknownBook is returned when an action names a book that is not in
	// the fetched collection.
	ErrUnknownBook = errors.New("book is not in the current collection")

	// ErrInvalidSortKey is returned for an unsupported ordering.
	ErrInvalidSortKey = errors.New("unsupported sort key")
)

// API is the subset of the catalog API the client uses.
type API interface {
	List(ctx context.Context) ([]entities.Book, error)
	Create(ctx context.Context, p client.Payload) (*entities.Book, error)
	Update(ctx context.Context, id string, p client.Payload) (*entities.Book, error)
	Delete(ctx context.Context, id string) error
}

// Controller runs user actions against a State. Every mutation is a full
// round trip: call the API, then re-fetch the whole collection.
type Controller struct {
	api API
}

func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Refresh replaces the collection with the API's current list. The page
// number is kept but clamped to the new page count, and the active sort is
// re-applied to the fresh list.
func (c *Controller) Refresh(ctx context.Context, s *State) error {
	books, err := c.api.List(ctx)
	if err != nil {
		log.Printf("[UI] refresh failed: %v", err)
		s.Notice = "Could not load books."
		return fmt.Errorf("refresh: %w", err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	s.Books = books
	s.Fresh = true
	SortBooks(s.Books, s.SortKey)
	s.clampPage()
	return nil
}

// Submit handles the add/edit form. In Adding mode it creates a book; in
// Editing mode it updates the edited book and keeps its favorite flag. On
// success the form is cleared and the mode returns to Adding.
func (c *Controller) Submit(ctx context.Context, s *State, form Form) error {
	s.Form = form
	payload := form.Payload()

	var err error
	switch s.Mode.Kind {
	case ModeEditing:
		if book, ok := s.Find(s.Mode.BookID); ok {
			payload.Favorite = book.Favorite
		}
		_, err = c.api.Update(ctx, s.Mode.BookID, payload)
	default:
		_, err = c.api.Create(ctx, payload)
	}

	if err != nil {
		log.Printf("[UI] submit failed: %v", err)
		s.Notice = failureNotice(err, "Could not save the book.")
		if client.IsNotFound(err) {
			s.Mode = Adding()
			s.Form = Form{}
			return errors.Join(err, c.Refresh(ctx, s))
		}
		return err
	}

	s.Form = Form{}
	s.Mode = Adding()
	s.Notice = ""
	return c.Refresh(ctx, s)
}

// Edit pre-fills the form with the book's current values and switches the
// form to Editing mode.
func (c *Controller) Edit(s *State, id string) error {
	book, ok := s.Find(id)
	if !ok {
		s.Notice = "That book no longer exists."
		return ErrUnknownBook
	}
	s.Form = FormFromBook(book)
	s.Mode = Editing(id)
	s.Notice = ""
	return nil
}

// CancelEdit discards the form and returns to Adding mode.
func (c *Controller) CancelEdit(s *State) {
	s.Form = Form{}
	s.Mode = Adding()
}

// Delete removes a book after the user confirmed it.
func (c *Controller) Delete(ctx context.Context, s *State, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.api.Delete(ctx, id); err != nil {
		log.Printf("[UI] delete failed: %v", err)
		s.Notice = failureNotice(err, "Could not delete the book.")
		if client.IsNotFound(err) {
			return errors.Join(err, c.Refresh(ctx, s))
		}
		return err
	}
	if s.Mode.IsEditing() && s.Mode.BookID == id {
		c.CancelEdit(s)
	}
	s.Notice = ""
	return c.Refresh(ctx, s)
}

// ToggleFavorite resends the book with only its favorite flag inverted.
func (c *Controller) ToggleFavorite(ctx context.Context, s *State, id string) error {
	book, ok := s.Find(id)
	if !ok {
		s.Notice = "That book no longer exists."
		return ErrUnknownBook
	}

	year := book.Year
	payload := client.Payload{
		Title:    book.Title,
		Year:     &year,
		Category: book.Category,
		Rating:   book.Rating,
		Favorite: !book.Favorite,
	}
	if _, err := c.api.Update(ctx, id, payload); err != nil {
		log.Printf("[UI] favorite toggle failed: %v", err)
		s.Notice = failureNotice(err, "Could not update the book.")
		return err
	}
	s.Notice = ""
	return c.Refresh(ctx, s)
}

// Search narrows the view to books matching term and returns to page 1.
func (c *Controller) Search(s *State, term string) {
	s.Query = strings.TrimSpace(term)
	s.CurrentPage = 1
}

// Sort reorders the whole collection in place and returns to page 1.
func (c *Controller) Sort(s *State, raw string) error {
	key, ok := ParseSortKey(raw)
	if !ok {
		return ErrInvalidSortKey
	}
	s.SortKey = key
	SortBooks(s.Books, key)
	s.CurrentPage = 1
	return nil
}

// ToggleFavorites flips between the favorites-only and full views and
// returns to page 1.
func (c *Controller) ToggleFavorites(s *State) {
	s.FavoritesOnly = !s.FavoritesOnly
	s.CurrentPage = 1
}

// Payload converts the typed form into an API body. An unparsable rating
// becomes 0 and an unparsable year is left out, so the API rejects both.
func (f Form) Payload() client.Payload {
	p := client.Payload{
		Title:    strings.TrimSpace(f.Title),
		Category: strings.TrimSpace(f.Category),
	}
	if year, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
		p.Year = &year
	}
	if rating, err := strconv.Atoi(strings.TrimSpace(f.Rating)); err == nil {
		p.Rating = rating
	}
	return p
}

// FormFromBook fills a form with the book's current values.
func FormFromBook(b entities.Book) Form {
	return Form{
		Title:    b.Title,
		Year:     strconv.Itoa(b.Year),
		Category: b.Category,
		Rating:   strconv.Itoa(b.Rating),
	}
}

func failureNotice(err error, fallback string) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" && statusErr.StatusCode < 500 {
		return fallback + " " + capitalize(statusErr.Message) + "."
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
