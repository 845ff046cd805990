package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionMiddleware != nil {
		router.Use(cfg.SessionMiddleware)
	}

	router.SetHTMLTemplate(loadTemplates())

	health := NewHealthController(cfg.Database, cfg.Counter, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	if cfg.BookStore != nil {
		booksController := NewBooksController(cfg.BookStore)
		api := router.Group("/api")
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)
	}

	// Export and task status endpoints answer 503 while the queue is disabled
	tasksController := NewTasksController(cfg.TaskQueue)
	router.POST("/api/exports", tasksController.TriggerExport)
	router.GET("/api/tasks/:id", tasksController.GetTaskStatus)

	// Browser client
	if cfg.CatalogAPI != nil && cfg.States != nil {
		ui := NewUIController(cfg.CatalogAPI, cfg.States, cfg.PageSize)
		router.GET("/", ui.CatalogPage)
		router.POST("/ui/books", ui.SubmitBook)
		router.POST("/ui/books/:id/edit", ui.EditBook)
		router.POST("/ui/cancel", ui.CancelEdit)
		router.GET("/ui/books/:id/delete", ui.ConfirmDeletePage)
		router.POST("/ui/books/:id/delete", ui.DeleteBook)
		router.POST("/ui/books/:id/favorite", ui.ToggleFavorite)
		router.POST("/ui/search", ui.Search)
		router.POST("/ui/sort", ui.Sort)
		router.POST("/ui/favorites", ui.ToggleFavorites)
		router.POST("/ui/page/next", ui.NextPage)
		router.POST("/ui/page/prev", ui.PrevPage)
	}

	return router
}
