package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/client"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/session"
	"github.com/mrlokans/bookshelf/internal/tasks"
	"github.com/mrlokans/bookshelf/internal/view"
)

// =============================================================================
// Store Service
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookCounter = (*books.Repository)(nil)
var _ http.HealthChecker = (*database.Database)(nil)
var _ exporters.BookLister = (*books.Repository)(nil)

// =============================================================================
// Browser Client
// =============================================================================

var _ view.API = (*client.Client)(nil)
var _ http.StateStore = (*session.Manager)(nil)

// =============================================================================
// Export Pipeline
// =============================================================================

var _ exporters.BookExporter = (*exporters.JSONExporter)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.ExportEnqueuer = (*tasks.Client)(nil)
