package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(store, logger)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func createTestPost(t *testing.T, srv *Server, published bool) types.Post {
	t.Helper()
	payload := types.NewPost{
		Title:     fmt.Sprintf("Test Post %s", uuid.NewString()),
		Kind:      "post",
		Body:      "Test post body content.",
		Tags:      []string{"test"},
		Published: published,
	}
	status, body := doRequest(t, srv, http.MethodPost, "/api/v1/posts", payload)
	require.Equal(t, http.StatusCreated, status, "create post failed: %s", body)

	var post types.Post
	require.NoError(t, json.Unmarshal(body, &post))
	require.NotEmpty(t, post.UID)
	return post
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, _ := doRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCreateAndGetPost(t *testing.T) {
	srv := newTestServer(t)
	created := createTestPost(t, srv, true)

	status, body := doRequest(t, srv, http.MethodGet, "/api/v1/posts/uid/"+created.UID, nil)
	require.Equal(t, http.StatusOK, status)

	var got types.Post
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, types.KindPost, got.Kind)
	assert.Equal(t, []string{"test"}, got.Tags)
	assert.True(t, got.Published)
}

func TestCreate_InvalidPayload(t *testing.T) {
	srv := newTestServer(t)

	// Missing title
	status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/posts", types.NewPost{
		Kind: "post", Body: "b",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown kind label
	status, _ = doRequest(t, srv, http.MethodPost, "/api/v1/posts", types.NewPost{
		Title: "t", Kind: "gallery", Body: "b",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Not even JSON
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPublishedVsAll(t *testing.T) {
	srv := newTestServer(t)
	createTestPost(t, srv, true)
	createTestPost(t, srv, false)

	status, body := doRequest(t, srv, http.MethodGet, "/api/v1/posts", nil)
	require.Equal(t, http.StatusOK, status)
	var published []types.Post
	require.NoError(t, json.Unmarshal(body, &published))
	assert.Len(t, published, 1)

	status, body = doRequest(t, srv, http.MethodGet, "/api/v1/posts/all", nil)
	require.Equal(t, http.StatusOK, status)
	var all []types.Post
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 2)
}

func TestListMeta_OmitsBody(t *testing.T) {
	srv := newTestServer(t)
	createTestPost(t, srv, true)

	status, body := doRequest(t, srv, http.MethodGet, "/api/v1/posts/meta", nil)
	require.Equal(t, http.StatusOK, status)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0], "body")
	assert.Contains(t, raw[0], "title")
}

func TestListByTag_ScopedToKind(t *testing.T) {
	srv := newTestServer(t)
	post := createTestPost(t, srv, true)

	// A page sharing the tag must not leak into the post listing
	status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/pages", types.NewPost{
		Title: "Tagged Page " + uuid.NewString(), Kind: "page", Body: "b",
		Tags: []string{"test"}, Published: true,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, srv, http.MethodGet, "/api/v1/posts/tag/test", nil)
	require.Equal(t, http.StatusOK, status)
	var posts []types.Post
	require.NoError(t, json.Unmarshal(body, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, post.UID, posts[0].UID)

	// Unknown tags are an empty list, not an error
	status, body = doRequest(t, srv, http.MethodGet, "/api/v1/posts/tag/nope", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &posts))
	assert.Empty(t, posts)
}

func TestKindsDoNotCross(t *testing.T) {
	srv := newTestServer(t)
	post := createTestPost(t, srv, true)

	status, _ := doRequest(t, srv, http.MethodGet, "/api/v1/pages/uid/"+post.UID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdatePost(t *testing.T) {
	srv := newTestServer(t)
	created := createTestPost(t, srv, false)

	newTitle := "Updated Title"
	status, body := doRequest(t, srv, http.MethodPut, "/api/v1/posts/uid/"+created.UID,
		types.UpdatePost{Title: &newTitle})
	require.Equal(t, http.StatusOK, status)

	var updated types.Post
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.Body, updated.Body)
	assert.False(t, updated.Published)
}

func TestUpdate_NotFound(t *testing.T) {
	srv := newTestServer(t)
	title := "x"
	status, _ := doRequest(t, srv, http.MethodPut, "/api/v1/posts/uid/nonexistent",
		types.UpdatePost{Title: &title})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeletePost(t *testing.T) {
	srv := newTestServer(t)
	created := createTestPost(t, srv, true)

	status, body := doRequest(t, srv, http.MethodDelete, "/api/v1/posts/uid/"+created.UID, nil)
	require.Equal(t, http.StatusOK, status)

	// Last known state comes back with the delete
	var deleted types.Post
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, created.UID, deleted.UID)

	status, _ = doRequest(t, srv, http.MethodGet, "/api/v1/posts/uid/"+created.UID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDelete_NotFound(t *testing.T) {
	srv := newTestServer(t)
	status, _ := doRequest(t, srv, http.MethodDelete, "/api/v1/posts/uid/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreatePage_SlugUID(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, srv, http.MethodPost, "/api/v1/pages", types.NewPost{
		Title: "About This Site", Kind: "page", Body: "b", Published: true,
	})
	require.Equal(t, http.StatusCreated, status)

	var page types.Post
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, "about-this-site", page.UID)
	assert.Equal(t, types.KindPage, page.Kind)
}
