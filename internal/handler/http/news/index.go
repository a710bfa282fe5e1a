package news

import (
	"net/http"
)

const indexHTML = `<h1>API Tổng hợp tin tức Investing.com</h1>` +
	`<p>Sử dụng endpoint <code>/api/news</code> để lấy dữ liệu.</p>`

// IndexHandler serves a short HTML page pointing to the API.
type IndexHandler struct{}

// ServeHTTP writes the static index page.
func (IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}
