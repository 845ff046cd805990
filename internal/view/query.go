package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// SortKey names one of the supported orderings.
type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortYear   SortKey = "year"
	SortRating SortKey = "rating"
)

// ParseSortKey accepts "title", "year", "rating" or "" (store order).
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortTitle, SortYear, SortRating:
		return k, true
	}
	return SortNone, false
}

// Matches reports whether term is a case-insensitive substring of the
// book's title, category or decimal year.
func Matches(b entities.Book, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Category), term) ||
		strings.Contains(strconv.Itoa(b.Year), term)
}

// Filter returns the books matching term, keeping their order.
func Filter(books []entities.Book, term string) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if Matches(b, term) {
			out = append(out, b)
		}
	}
	return out
}

// Favorites returns only the books marked favorite.
func Favorites(books []entities.Book) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.Favorite {
			out = append(out, b)
		}
	}
	return out
}

// SortBooks reorders books in place. Title is lexicographic ignoring case,
// year ascending, rating descending. Ties keep their previous order.
func SortBooks(books []entities.Book, key SortKey) {
	var less func(a, b entities.Book) bool
	switch key {
	case SortTitle:
		less = func(a, b entities.Book) bool {
			la, lb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if la != lb {
				return la < lb
			}
			return a.Title < b.Title
		}
	case SortYear:
		less = func(a, b entities.Book) bool { return a.Year < b.Year }
	case SortRating:
		less = func(a, b entities.Book) bool { return a.Rating > b.Rating }
	default:
		return
	}
	sort.SliceStable(books, func(i, j int) bool {
		return less(books[i], books[j])
	})
}
