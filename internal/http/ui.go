package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/view"
)

// StateStore keeps one view.State per browser.
type StateStore interface {
	LoadState(r *http.Request, pageSize int) *view.State
	SaveState(r *http.Request, s *view.State)
}

// UIController serves the browser client. Handlers load the caller's view
// state, run one view action and redirect back to the catalog page.
type UIController struct {
	actions  *view.Controller
	states   StateStore
	pageSize int
}

func NewUIController(api view.API, states StateStore, pageSize int) *UIController {
	return &UIController{
		actions:  view.NewController(api),
		states:   states,
		pageSize: pageSize,
	}
}

// CatalogPage renders the current page. The collection is fetched again
// unless the previous action has just refreshed it.
func (controller *UIController) CatalogPage(c *gin.Context) {
	s := controller.states.LoadState(c.Request, controller.pageSize)
	if !s.Fresh {
		// Refresh records its failure in the notice
		_ = controller.actions.Refresh(c.Request.Context(), s)
	}

	page := view.Render(s)

	s.Fresh = false
	s.Notice = ""
	controller.states.SaveState(c.Request, s)

	c.HTML(http.StatusOK, "catalog", gin.H{
		"Page":      page,
		"CSRFField": CSRFFormField,
		"CSRFToken": GetCSRFToken(c),
	})
}

func (controller *UIController) SubmitBook(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		form := view.Form{
			Title:    c.PostForm("title"),
			Year:     c.PostForm("year"),
			Category: c.PostForm("category"),
			Rating:   c.PostForm("rating"),
		}
		_ = controller.actions.Submit(c.Request.Context(), s, form)
	})
}

func (controller *UIController) EditBook(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		_ = controller.actions.Edit(s, c.Param("id"))
	})
}

func (controller *UIController) CancelEdit(c *gin.Context) {
	controller.update(c, controller.actions.CancelEdit)
}

// ConfirmDeletePage asks the user to confirm removing a book.
func (controller *UIController) ConfirmDeletePage(c *gin.Context) {
	s := controller.states.LoadState(c.Request, controller.pageSize)
	book, ok := s.Find(c.Param("id"))
	if !ok {
		s.Notice = "That book no longer exists."
		controller.states.SaveState(c.Request, s)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "confirm-delete", gin.H{
		"Book":      book,
		"CSRFField": CSRFFormField,
		"CSRFToken": GetCSRFToken(c),
	})
}

// DeleteBook removes the book only when the form carries confirm=yes.
func (controller *UIController) DeleteBook(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		confirmed := c.PostForm("confirm") == "yes"
		err := controller.actions.Delete(c.Request.Context(), s, c.Param("id"), confirmed)
		if errors.Is(err, view.ErrNotConfirmed) {
			s.Notice = ""
		}
	})
}

func (controller *UIController) ToggleFavorite(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		_ = controller.actions.ToggleFavorite(c.Request.Context(), s, c.Param("id"))
	})
}

func (controller *UIController) Search(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		controller.actions.Search(s, c.PostForm("q"))
	})
}

func (controller *UIController) Sort(c *gin.Context) {
	controller.update(c, func(s *view.State) {
		if err := controller.actions.Sort(s, c.PostForm("sort")); err != nil {
			s.Notice = "Unknown sort option."
		}
	})
}

func (controller *UIController) ToggleFavorites(c *gin.Context) {
	controller.update(c, controller.actions.ToggleFavorites)
}

func (controller *UIController) NextPage(c *gin.Context) {
	controller.update(c, func(s *view.State) { s.NextPage() })
}

func (controller *UIController) PrevPage(c *gin.Context) {
	controller.update(c, func(s *view.State) { s.PrevPage() })
}

// update runs one action against the caller's state, saves it and
// redirects to the catalog page (post/redirect/get).
func (controller *UIController) update(c *gin.Context, action func(s *view.State)) {
	s := controller.states.LoadState(c.Request, controller.pageSize)
	action(s)
	controller.states.SaveState(c.Request, s)
	c.Redirect(http.StatusSeeOther, "/")
}
