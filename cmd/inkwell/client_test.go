package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/pkg/types"
)

func TestClientCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload types.NewPost
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hello", payload.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.Post{UID: "abc123", Title: payload.Title, Kind: types.KindPost})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api/v1")
	post, err := client.Create(context.Background(), types.NewPost{Title: "Hello", Kind: "post", Body: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", post.UID)
}

func TestClientListMetaUsesAllRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pages/all/meta", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]types.PostMeta{{UID: "about", Kind: types.KindPage}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api/v1")
	metas, err := client.ListMeta(context.Background(), types.KindPage)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "about", metas[0].UID)
}

func TestClientErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api/v1")
	_, err := client.View(context.Background(), types.KindPost, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDocumentOverridesFrontMatterKind(t *testing.T) {
	path := writeTempDoc(t, `---
title: About
kind: post
tags: [meta]
summary: Who we are.
---
About this site.
`)

	payload, err := loadDocument(types.KindPage, path)
	require.NoError(t, err)

	assert.Equal(t, "page", payload.Kind)
	assert.Equal(t, "About", payload.Title)
	assert.Equal(t, []string{"meta"}, payload.Tags)
	require.NotNil(t, payload.Summary)
	assert.Equal(t, "Who we are.", *payload.Summary)
	assert.Contains(t, payload.Body, "About this site.")
}

func TestLoadDocumentRequiresTitle(t *testing.T) {
	path := writeTempDoc(t, "no front matter here\n")

	_, err := loadDocument(types.KindPost, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a title")
}

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
