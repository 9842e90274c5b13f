package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeCluster(t *testing.T, handler http.HandlerFunc) *ElasticIndex {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewElasticClient(srv.URL)
	require.NoError(t, err)
	return NewElasticIndex(client, "videos")
}

func TestElasticSearchReturnsHitIDs(t *testing.T) {
	var body string
	idx := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/videos/_search"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"took":1,"hits":{"total":{"value":2,"relation":"eq"},"hits":[{"_index":"videos","_id":"a","_score":2.0},{"_index":"videos","_id":"b","_score":1.0}]}}`)
	})

	ids, err := idx.Search(context.Background(), "gopher", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Contains(t, body, "multi_match")
	assert.Contains(t, body, "gopher")
}

func TestElasticRemoveIgnoresMissing(t *testing.T) {
	idx := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"_index":"videos","_id":"gone","result":"not_found"}`)
	})
	assert.NoError(t, idx.Remove(context.Background(), "gone"))
}

func TestElasticPut(t *testing.T) {
	var path string
	idx := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"_index":"videos","_id":"v1","result":"created"}`)
	})
	require.NoError(t, idx.Put(context.Background(), Document{ID: "v1", Title: "t"}))
	assert.Equal(t, "/videos/_doc/v1", path)
}
