package news

import "net/http"

// Register registers the news endpoints with the given mux.
// mws wrap only the list endpoint, outermost first.
// "/{$}" matches only the root so unknown paths still 404.
func Register(mux *http.ServeMux, svc Aggregator, mws ...func(http.Handler) http.Handler) {
	var list http.Handler = ListHandler{Svc: svc}
	for i := len(mws) - 1; i >= 0; i-- {
		list = mws[i](list)
	}
	mux.Handle("GET /api/news", list)
	mux.Handle("GET /{$}", IndexHandler{})
}
