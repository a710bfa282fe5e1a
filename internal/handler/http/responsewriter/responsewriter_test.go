package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("[]"))

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 2, w.BytesWritten())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponseWriter_WriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_MultipleWrites(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	_, _ = w.Write([]byte("hello "))
	_, _ = w.Write([]byte("world"))

	assert.Equal(t, 11, w.BytesWritten())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, http.StatusOK, w.StatusCode())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	assert.Same(t, rec, w.Unwrap())
}
