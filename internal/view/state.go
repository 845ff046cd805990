// Package view holds the browser client's state and the actions that mutate
// it. A State is an explicit value owned by the caller (one per browser
// session); nothing here keeps ambient globals.
package view

import (
	"github.com/mrlokans/bookshelf/internal/entities"
)

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 8

// ModeKind tags the form's current purpose.
type ModeKind int

const (
	ModeAdding ModeKind = iota
	ModeEditing
)

// Mode is either Adding or Editing(BookID). The single submit action
// consults it instead of swapping handlers.
type Mode struct {
	Kind   ModeKind
	BookID string
}

func Adding() Mode {
	return Mode{Kind: ModeAdding}
}

func Editing(id string) Mode {
	return Mode{Kind: ModeEditing, BookID: id}
}

func (m Mode) IsEditing() bool {
	return m.Kind == ModeEditing
}

// Form mirrors the add/edit form inputs as the user typed them.
type Form struct {
	Title    string
	Year     string
	Category string
	Rating   string
}

// State is everything the client knows: the last fetched collection plus
// view settings.
type State struct {
	Books         []entities.Book
	CurrentPage   int
	PageSize      int
	FavoritesOnly bool
	Query         string
	SortKey       SortKey
	Mode          Mode
	Form          Form
	Notice        string

	// Fresh is set by Refresh and cleared once a page has been rendered, so
	// the next plain page load fetches again.
	Fresh bool
}

// NewState returns an empty state on page 1 in Adding mode.
func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{
		Books:       []entities.Book{},
		CurrentPage: 1,
		PageSize:    pageSize,
		Mode:        Adding(),
	}
}

// Find returns the book with the given id from the fetched collection.
func (s *State) Find(id string) (entities.Book, bool) {
	for _, b := range s.Books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

// Source is the list the current page is cut from: the collection narrowed
// by the favorites-only toggle and the search query.
func (s *State) Source() []entities.Book {
	src := s.Books
	if s.FavoritesOnly {
		src = Favorites(src)
	}
	if s.Query != "" {
		src = Filter(src, s.Query)
	}
	return src
}

// FavoritesLabel is the caption of the favorites-only toggle.
func (s *State) FavoritesLabel() string {
	if s.FavoritesOnly {
		return "Show All"
	}
	return "Show Favorites"
}
