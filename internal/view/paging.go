package view

import "github.com/mrlokans/bookshelf/internal/entities"

// TotalPages is ceil(n/size); an empty list has zero pages.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// TotalPages returns the page count of src at the state's page size.
func (s *State) TotalPages(src []entities.Book) int {
	return TotalPages(len(src), s.PageSize)
}

// VisibleSlice returns src[(page-1)*size : page*size], truncated at the end
// of src. A page past the end yields an empty slice.
func (s *State) VisibleSlice(src []entities.Book) []entities.Book {
	start := (s.CurrentPage - 1) * s.PageSize
	if start < 0 || start >= len(src) {
		return []entities.Book{}
	}
	end := start + s.PageSize
	if end > len(src) {
		end = len(src)
	}
	return src[start:end]
}

// NextPage advances one page if there is one.
func (s *State) NextPage() bool {
	if s.CurrentPage < s.TotalPages(s.Source()) {
		s.CurrentPage++
		return true
	}
	return false
}

// PrevPage goes back one page unless already on the first.
func (s *State) PrevPage() bool {
	if s.CurrentPage > 1 {
		s.CurrentPage--
		return true
	}
	return false
}

// GoTo moves to page n when it lies in [1, totalPages]; otherwise no-op.
func (s *State) GoTo(n int) bool {
	if n < 1 || n > s.TotalPages(s.Source()) {
		return false
	}
	s.CurrentPage = n
	return true
}

// clampPage keeps the current page inside [1, max(1, totalPages)].
func (s *State) clampPage() {
	total := s.TotalPages(s.Source())
	if s.CurrentPage > total {
		s.CurrentPage = total
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
}
