package view

import (
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Card is one rendered book.
type Card struct {
	ID            string
	Title         string
	Year          int
	Category      string
	Rating        int
	Favorite      bool
	FavoriteLabel string
}

// Pagination is the rendered "Page X of Y" bar.
type Pagination struct {
	Current int
	Total   int
	Label   string
	HasPrev bool
	HasNext bool
}

// SortOption is one entry of the sort selector.
type SortOption struct {
	Key      SortKey
	Label    string
	Selected bool
}

// Page is everything the catalog template needs.
type Page struct {
	Cards          []Card
	Pagination     Pagination
	Form           Form
	Editing        bool
	SubmitLabel    string
	FavoritesOnly  bool
	FavoritesLabel string
	Query          string
	SortOptions    []SortOption
	Notice         string
	TotalBooks     int
	MatchingBooks  int
}

// RenderList turns a page slice into cards.
func RenderList(slice []entities.Book) []Card {
	cards := make([]Card, 0, len(slice))
	for _, b := range slice {
		label := "Favorite"
		if b.Favorite {
			label = "Unfavorite"
		}
		cards = append(cards, Card{
			ID:            b.ID,
			Title:         b.Title,
			Year:          b.Year,
			Category:      b.Category,
			Rating:        b.Rating,
			Favorite:      b.Favorite,
			FavoriteLabel: label,
		})
	}
	return cards
}

// RenderPagination builds the pagination bar. Previous is disabled on page
// 1 and Next on the last page.
func RenderPagination(total, current int) Pagination {
	shown := total
	if shown < 1 {
		shown = 1
	}
	return Pagination{
		Current: current,
		Total:   total,
		Label:   fmt.Sprintf("Page %d of %d", current, shown),
		HasPrev: current > 1,
		HasNext: current < total,
	}
}

// Render derives the visible page from the state.
func Render(s *State) Page {
	src := s.Source()

	submit := "Add Book"
	if s.Mode.IsEditing() {
		submit = "Save Changes"
	}

	options := []SortOption{
		{Key: SortNone, Label: "Sort by"},
		{Key: SortTitle, Label: "Title"},
		{Key: SortYear, Label: "Year"},
		{Key: SortRating, Label: "Rating"},
	}
	for i := range options {
		options[i].Selected = options[i].Key == s.SortKey
	}

	return Page{
		Cards:          RenderList(s.VisibleSlice(src)),
		Pagination:     RenderPagination(s.TotalPages(src), s.CurrentPage),
		Form:           s.Form,
		Editing:        s.Mode.IsEditing(),
		SubmitLabel:    submit,
		FavoritesOnly:  s.FavoritesOnly,
		FavoritesLabel: s.FavoritesLabel(),
		Query:          s.Query,
		SortOptions:    options,
		Notice:         s.Notice,
		TotalBooks:     len(s.Books),
		MatchingBooks:  len(src),
	}
}
