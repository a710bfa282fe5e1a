package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"market-news/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	items []entity.NewsItem
}

func (s stubAggregator) Latest(_ context.Context) []entity.NewsItem { return s.items }

func strPtr(s string) *string { return &s }

func newMux(svc Aggregator) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, svc)
	return mux
}

func TestListHandler_ServesItemsInOrder(t *testing.T) {
	svc := stubAggregator{items: []entity.NewsItem{
		{
			Title:       "Newest",
			Link:        "https://example.com/2",
			Description: "<b>d2</b>",
			Published:   "Tue, 16 Jan 2024 08:00:00 GMT",
			PublishedAt: time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
			Source:      "Feed B",
			Image:       strPtr("https://img.example.com/2.jpg"),
		},
		{
			Title:       "Older",
			Link:        "https://example.com/1",
			Description: "d1",
			Published:   "Mon, 15 Jan 2024 08:00:00 GMT",
			PublishedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			Source:      "Feed A",
		},
	}}

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"title":"Newest","link":"https://example.com/2","description":"<b>d2</b>",
		 "published":"Tue, 16 Jan 2024 08:00:00 GMT","source":"Feed B","image":"https://img.example.com/2.jpg"},
		{"title":"Older","link":"https://example.com/1","description":"d1",
		 "published":"Mon, 15 Jan 2024 08:00:00 GMT","source":"Feed A","image":null}
	]`, rec.Body.String())
}

func TestListHandler_ExactFieldSet(t *testing.T) {
	svc := stubAggregator{items: []entity.NewsItem{{
		Title: "t", Link: "l", Description: "d", Published: "p", Source: "s",
		PublishedAt: time.Now(),
	}}}

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	keys := make([]string, 0, len(got[0]))
	for k := range got[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"title", "link", "description", "published", "source", "image"}, keys)
	assert.Nil(t, got[0]["image"])
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	for _, items := range [][]entity.NewsItem{nil, {}} {
		rec := httptest.NewRecorder()
		newMux(stubAggregator{items: items}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	}
}

func TestRegister_Routes(t *testing.T) {
	mux := newMux(stubAggregator{})

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "index", method: http.MethodGet, path: "/", want: http.StatusOK},
		{name: "news", method: http.MethodGet, path: "/api/news", want: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/unknown", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, path: "/api/news", want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestIndexHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	IndexHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<code>/api/news</code>")
}

func TestRegister_MiddlewareWrapsListOnly(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux := http.NewServeMux()
	Register(mux, stubAggregator{}, tag("outer"), tag("inner"))

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/news", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)

	order = nil
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, order)
}
