package session

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// stateWriter saves the view state once, right before the response starts.
// Handlers finish with a redirect or a rendered page, and the cookie has to
// be on that first write.
type stateWriter struct {
	gin.ResponseWriter
	m    *Manager
	req  *http.Request
	once sync.Once
}

func (w *stateWriter) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *stateWriter) WriteHeaderNow() {
	w.save()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *stateWriter) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}

func (w *stateWriter) WriteString(s string) (int, error) {
	w.save()
	return w.ResponseWriter.WriteString(s)
}

func (w *stateWriter) save() {
	w.once.Do(func() {
		ctx := w.req.Context()
		switch w.m.Status(ctx) {
		case scs.Modified:
			token, expiry, err := w.m.Commit(ctx)
			if err != nil {
				log.Printf("[SESSION] Failed to save view state: %v", err)
				return
			}
			w.Header().Add("Vary", "Cookie")
			w.m.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
		case scs.Destroyed:
			w.Header().Add("Vary", "Cookie")
			w.m.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
		}
	})
}

// LoadSave returns a Gin middleware that loads the browser's session before
// the UI handlers run and saves any view state they stored. The JSON API is
// stateless and skipped.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		var token string
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("[SESSION] Failed to load session: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &stateWriter{ResponseWriter: c.Writer, m: m, req: c.Request}
		c.Writer = w

		c.Next()

		// handlers that never wrote still get their state saved
		w.save()
	}
}
