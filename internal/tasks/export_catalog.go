package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportCatalogTask writes a JSON snapshot of the whole catalog.
type ExportCatalogTask struct {
	// Reason records who asked for the export ("api", "schedule").
	Reason string `json:"reason,omitempty"`
}

// Config returns the queue configuration for export tasks.
func (t ExportCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_catalog",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportCatalogProcessor creates a processor function for ExportCatalogTask.
func ExportCatalogProcessor(lister exporters.BookLister, exporter exporters.BookExporter) backlite.QueueProcessor[ExportCatalogTask] {
	return func(ctx context.Context, task ExportCatalogTask) error {
		if lister == nil || exporter == nil {
			return fmt.Errorf("catalog exporter not configured")
		}

		result, err := exporters.ExportCatalog(ctx, lister, exporter)
		if err != nil {
			return fmt.Errorf("export catalog: %w", err)
		}

		log.Printf("[TASK] Catalog export (%s) complete: %d books, %d favorites, file %s",
			task.Reason, result.BooksProcessed, result.Favorites, result.Filename)
		return nil
	}
}

// NewExportCatalogQueue creates a backlite queue for catalog exports.
func NewExportCatalogQueue(lister exporters.BookLister, exporter exporters.BookExporter) backlite.Queue {
	return backlite.NewQueue(ExportCatalogProcessor(lister, exporter))
}
