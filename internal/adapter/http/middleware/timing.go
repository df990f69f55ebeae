package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ProcessTime reports handler elapsed time on every response via the
// X-Process-Time-Ms header, in milliseconds with 2 decimals.
func ProcessTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		tw := &timingWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Writer = tw
		c.Next()
		// header must be in place even for handlers that never write a body
		tw.stamp()
	}
}

// timingWriter injects the timing header just before the response status
// is committed. Gin defers the actual header flush to the first body
// write, so stamping on WriteHeader/Write is early enough.
type timingWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	elapsed := float64(time.Since(w.start).Nanoseconds()) / 1e6
	w.Header().Set("X-Process-Time-Ms", strconv.FormatFloat(elapsed, 'f', 2, 64))
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

var _ http.ResponseWriter = (*timingWriter)(nil)
