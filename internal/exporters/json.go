package exporters

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Snapshot is the on-disk form of one catalog export.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Books      []entities.Book `json:"books"`
}

// JSONExporter writes catalog snapshots into Dir, one file per export.
type JSONExporter struct {
	Dir string

	now func() time.Time
}

func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{Dir: dir, now: time.Now}
}

// Export saves books as an indented JSON snapshot named
// catalog-<timestamp>-<uuid>.json.
func (e *JSONExporter) Export(books []entities.Book) (ExportResult, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}
	if books == nil {
		books = []entities.Book{}
	}

	now := e.now().UTC()
	snapshot := Snapshot{ExportedAt: now, Count: len(books), Books: books}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filename := fmt.Sprintf("catalog-%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString())
	path := filepath.Join(e.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export file: %w", err)
	}

	favorites := 0
	for _, b := range books {
		if b.Favorite {
			favorites++
		}
	}

	log.Printf("[EXPORT] Wrote %d books to %s", len(books), path)
	return ExportResult{BooksProcessed: len(books), Favorites: favorites, Filename: filename}, nil
}
