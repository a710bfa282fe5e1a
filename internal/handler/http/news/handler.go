package news

import (
	"context"
	"log/slog"
	"net/http"

	"market-news/internal/domain/entity"
	"market-news/internal/handler/http/respond"
	"market-news/internal/observability/logging"
)

// Aggregator returns the current newest-first news list.
type Aggregator interface {
	Latest(ctx context.Context) []entity.NewsItem
}

// ListHandler serves the aggregated news list.
type ListHandler struct {
	Svc Aggregator
}

// ServeHTTP returns the aggregated news
// @Summary      Aggregated market news
// @Description  Fetches every configured feed, drops repeated titles and returns the items newest first. Failed feeds are omitted; the aggregation itself never fails the request.
// @Tags         news
// @Produce      json
// @Success      200 {array} DTO "News items, possibly empty"
// @Failure      429 {object} map[string]string "Per-client rate limit exceeded"
// @Router       /api/news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items := h.Svc.Latest(ctx)

	logging.FromContext(ctx).Debug("news list served",
		slog.Int("items", len(items)))

	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, toDTOs(items))
}
