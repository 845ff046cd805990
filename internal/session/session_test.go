package session

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/view"
)

func setupManager(t *testing.T, cfg config.Session) *Manager {
	t.Helper()
	m, _ := setupManagerWithDB(t, cfg)
	return m
}

func setupManagerWithDB(t *testing.T, cfg config.Session) (*Manager, *sql.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: databases are per connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := NewManager(sqlDB, cfg)
	require.NoError(t, err)
	return m, sqlDB
}

func TestNewManager(t *testing.T) {
	m := setupManager(t, config.Session{Lifetime: time.Hour})

	assert.Equal(t, "bookshelf_session", m.Cookie.Name)
	assert.True(t, m.Cookie.HttpOnly)
	assert.False(t, m.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, m.Cookie.SameSite)
	assert.Equal(t, time.Hour, m.Lifetime)
	assert.Equal(t, 30*time.Minute, m.IdleTimeout)
}

func TestNewManager_Defaults(t *testing.T) {
	m := setupManager(t, config.Session{SecureCookies: true})

	assert.True(t, m.Cookie.Secure)
	assert.Equal(t, 24*time.Hour, m.Lifetime)
}

func TestLoadState_NewSession(t *testing.T) {
	m := setupManager(t, config.Session{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler := m.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.LoadState(r, 5)
		assert.Equal(t, 1, s.CurrentPage)
		assert.Equal(t, 5, s.PageSize)
		assert.False(t, s.Mode.IsEditing())
		assert.Empty(t, s.Books)
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoadSave_PersistsStateAcrossRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := setupManager(t, config.Session{})

	router := gin.New()
	router.Use(m.LoadSave())
	router.POST("/save", func(c *gin.Context) {
		s := m.LoadState(c.Request, 8)
		s.Books = []entities.Book{{ID: "b1", Title: "Dune", Year: 1965, Category: "Sci-Fi", Rating: 5}}
		s.Query = "dune"
		s.SortKey = view.SortTitle
		s.Mode = view.Editing("b1")
		s.Form = view.Form{Title: "Dune"}
		s.CurrentPage = 3
		m.SaveState(c.Request, s)
		c.Status(http.StatusNoContent)
	})
	router.GET("/load", func(c *gin.Context) {
		s := m.LoadState(c.Request, 4)
		c.JSON(http.StatusOK, gin.H{
			"page":      s.CurrentPage,
			"page_size": s.PageSize,
			"query":     s.Query,
			"sort":      string(s.SortKey),
			"editing":   s.Mode.BookID,
			"books":     len(s.Books),
		})
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/save", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "bookshelf_session", cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/load", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"page":3,"page_size":4,"query":"dune","sort":"title","editing":"b1","books":1}`, rr.Body.String())
}

func TestLoadSave_SeparateBrowsersHaveSeparateState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := setupManager(t, config.Session{})

	router := gin.New()
	router.Use(m.LoadSave())
	router.POST("/search", func(c *gin.Context) {
		s := m.LoadState(c.Request, 8)
		s.Query = c.Query("q")
		m.SaveState(c.Request, s)
		c.Status(http.StatusNoContent)
	})
	router.GET("/query", func(c *gin.Context) {
		c.String(http.StatusOK, m.LoadState(c.Request, 8).Query)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/search?q=emma", nil))
	first := rr.Result().Cookies()
	require.Len(t, first, 1)

	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	req.AddCookie(first[0])
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "emma", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/query", nil))
	assert.Empty(t, rr.Body.String())
}

func TestLoadSave_CookieOnlyWhenStateSaved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := setupManager(t, config.Session{})

	router := gin.New()
	router.Use(m.LoadSave())
	router.GET("/", func(c *gin.Context) {
		_ = m.LoadState(c.Request, 8)
		c.String(http.StatusOK, "catalog")
	})
	router.POST("/ui/search", func(c *gin.Context) {
		s := m.LoadState(c.Request, 8)
		s.Query = "dune"
		m.SaveState(c.Request, s)
		c.Redirect(http.StatusSeeOther, "/")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ui/search", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	require.Len(t, rr.Result().Cookies(), 1)
	assert.Equal(t, "Cookie", rr.Header().Get("Vary"))
}

func TestLoadSave_SkipsAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, sqlDB := setupManagerWithDB(t, config.Session{})

	router := gin.New()
	router.Use(m.LoadSave())
	router.POST("/save", func(c *gin.Context) {
		m.SaveState(c.Request, m.LoadState(c.Request, 8))
		c.Status(http.StatusNoContent)
	})
	router.GET("/api/books", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/save", nil))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	// with the store gone, only routes that load the session fail
	require.NoError(t, sqlDB.Close())

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
