package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/view"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore BookStore
	Database  HealthChecker
	Counter   BookCounter

	// Browser client. UI routes are registered only when both are set.
	CatalogAPI view.API
	States     StateStore
	PageSize   int

	// CSRF protection for the form routes; disabled when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Session middleware, applied after CSRF
	SessionMiddleware gin.HandlerFunc

	// Task queue (optional). Leave nil when the queue is disabled.
	TaskQueue TaskQueue

	// Application info
	Version string
}
