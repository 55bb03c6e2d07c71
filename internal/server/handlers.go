package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/inkwell/internal/content"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

// handleCreate inserts new content. The kind comes from the payload, not
// from the route, so posting a page payload to /posts still creates a page.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload types.NewPost
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(payload); err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := content.NewRequest().Create(payload).Build(s.store)
	if err != nil {
		s.writeError(w, err)
		return
	}
	post, err := plan.RunOne(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, post)
}

// handleList serves the collection endpoints.
func (s *Server) handleList(kind types.Kind, publishedOnly, meta bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := content.NewRequest().WithKind(kind)
		if publishedOnly {
			req.PublishedOnly()
		}
		s.serveList(w, r, req, meta)
	}
}

// handleListByTag serves the tag-scoped collection endpoints.
func (s *Server) handleListByTag(kind types.Kind, publishedOnly, meta bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := content.NewRequest().WithKind(kind).ByTag(chi.URLParam(r, "tag"))
		if publishedOnly {
			req.PublishedOnly()
		}
		s.serveList(w, r, req, meta)
	}
}

func (s *Server) serveList(w http.ResponseWriter, r *http.Request, req *content.RequestBuilder, meta bool) {
	plan, err := req.Read().Build(s.store)
	if err != nil {
		s.writeError(w, err)
		return
	}
	posts, err := plan.Run(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	if meta {
		metas := make([]types.PostMeta, len(posts))
		for i, p := range posts {
			metas[i] = p.Meta()
		}
		s.writeJSON(w, http.StatusOK, metas)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

// handleGet serves a single record by uid, any publish state.
func (s *Server) handleGet(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := content.NewRequest().
			WithKind(kind).
			ByID(chi.URLParam(r, "uid")).
			Read().
			Build(s.store)
		if err != nil {
			s.writeError(w, err)
			return
		}
		post, err := plan.RunOne(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, post)
	}
}

// handleUpdate applies a partial update to the record with the given uid.
func (s *Server) handleUpdate(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var changes types.UpdatePost
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			s.badRequest(w, "invalid request body")
			return
		}

		plan, err := content.NewRequest().
			WithKind(kind).
			ByID(chi.URLParam(r, "uid")).
			Update(changes).
			Build(s.store)
		if err != nil {
			s.writeError(w, err)
			return
		}
		post, err := plan.RunOne(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, post)
	}
}

// handleDelete removes the record with the given uid and returns its last
// known state.
func (s *Server) handleDelete(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := content.NewRequest().
			WithKind(kind).
			ByID(chi.URLParam(r, "uid")).
			Delete().
			Build(s.store)
		if err != nil {
			s.writeError(w, err)
			return
		}
		post, err := plan.RunOne(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, post)
	}
}
