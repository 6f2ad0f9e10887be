package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(log *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(RequestIDFromContext(r.Context())))
	})
	r.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	r.HandleFunc("/post-only", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodPost)
	return Wrap(r, log)
}

func TestRequestIDGenerated(t *testing.T) {
	log, _ := test.NewNullLogger()
	rec := httptest.NewRecorder()
	newRouter(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	log, _ := test.NewNullLogger()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newRouter(log).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestLoggingRecordsStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := httptest.NewRecorder()
	newRouter(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Request handled", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/teapot", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestRecover(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := httptest.NewRecorder()
	newRouter(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.ErrorLevel, entries[0].Level)
	assert.Equal(t, http.StatusInternalServerError, entries[1].Data["status"])
}

func TestUnmatchedRoutesAreLogged(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/missing", http.StatusNotFound},
		{"/post-only", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		log, hook := test.NewNullLogger()
		rec := httptest.NewRecorder()
		newRouter(log).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		assert.Equal(t, tt.want, rec.Code, tt.path)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader), tt.path)
		entry := hook.LastEntry()
		require.NotNil(t, entry, tt.path)
		assert.Equal(t, tt.want, entry.Data["status"], tt.path)
		assert.Equal(t, tt.path, entry.Data["path"])
	}
}
