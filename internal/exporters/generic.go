package exporters

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookLister is the read side of the catalog an export needs.
type BookLister interface {
	List(ctx context.Context) ([]entities.Book, error)
}

type BookExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed int    `json:"books_processed"`
	Favorites      int    `json:"favorites"`
	Filename       string `json:"filename"`
}

// ExportCatalog lists the whole catalog and hands it to the exporter.
func ExportCatalog(ctx context.Context, lister BookLister, exporter BookExporter) (ExportResult, error) {
	books, err := lister.List(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	return exporter.Export(books)
}
