package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/internal/ranking"
	"github.com/hyperjump/contentkit/internal/tags"
	"go.uber.org/zap"
)

type listResponse struct {
	Items []*models.Item `json:"items"`
	Total int            `json:"total"`
}

type relatedResponse struct {
	Source  *models.Item     `json:"source"`
	Related []ranking.Result `json:"related"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// collection resolves the {collection} URL parameter, writing a 404 when unknown.
func (s *Server) collection(w http.ResponseWriter, r *http.Request) (models.Collection, bool) {
	c, err := models.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return c, true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	items, _ := s.library.Loader().List(r.Context(), c)

	q := r.URL.Query()
	if tag := q.Get("tag"); tag != "" {
		items = tags.Items(items, tag)
	}
	if category := q.Get("category"); category != "" {
		items = content.ByCategory(items, category)
	}
	if flag(q.Get("featured")) {
		items = content.Featured(items)
	}
	if flag(q.Get("breaking")) {
		items = content.Breaking(items)
	}
	switch q.Get("channel") {
	case "stable":
		items = content.Stable(items)
	case "prerelease":
		items = content.Prereleases(items)
	}
	if c == models.CollectionDocs && q.Get("group") == "sections" {
		sections := content.Sections(summaries(items))
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
		return
	}
	total := len(items)
	if limit, ok := intParam(q.Get("limit")); ok && limit < len(items) {
		items = items[:limit]
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: summaries(items), Total: total})
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	item, found := s.library.Loader().Get(r.Context(), c, chi.URLParam(r, "*"))
	if !found {
		s.respondError(w, http.StatusNotFound, "content not found")
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "*")
	source, found := s.library.Loader().Get(r.Context(), c, slug)
	if !found {
		s.respondError(w, http.StatusNotFound, "content not found")
		return
	}
	limit, _ := intParam(r.URL.Query().Get("limit"))
	items, _ := s.library.Loader().List(r.Context(), c)
	results := s.ranker.Related(items, source.Slug, limit)
	for i := range results {
		results[i].Item = results[i].Item.Summary()
	}
	s.logger.Debug("related content",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("collection", string(c)),
		zap.String("slug", slug),
		zap.Int("results", len(results)))
	s.respondJSON(w, http.StatusOK, relatedResponse{Source: source.Summary(), Related: results})
}

// scope returns the items of ?collection=, or of every collection when absent.
func (s *Server) scope(w http.ResponseWriter, r *http.Request) ([]*models.Item, bool) {
	name := r.URL.Query().Get("collection")
	if name == "" {
		all, _ := s.library.All(r.Context())
		return s.library.Flatten(all), true
	}
	c, err := models.ParseCollection(name)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	items, _ := s.library.Loader().List(r.Context(), c)
	return items, true
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	items, ok := s.scope(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"tags": s.tags.Count(items)})
}

func (s *Server) handleTagsByCollection(w http.ResponseWriter, r *http.Request) {
	all, _ := s.library.All(r.Context())
	s.respondJSON(w, http.StatusOK, s.tags.ByCollection(all))
}

func (s *Server) handleRelatedTags(w http.ResponseWriter, r *http.Request) {
	items, ok := s.scope(w, r)
	if !ok {
		return
	}
	limit, ok := intParam(r.URL.Query().Get("limit"))
	if !ok {
		limit = s.relatedLimit
	}
	tag := chi.URLParam(r, "tag")
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tag":     tag,
		"related": s.tags.Related(items, tag, limit),
	})
}

func (s *Server) handleTagItems(w http.ResponseWriter, r *http.Request) {
	items, ok := s.scope(w, r)
	if !ok {
		return
	}
	tag := chi.URLParam(r, "tag")
	matched := tags.Items(items, tag)
	if len(matched) == 0 {
		s.respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":       "no content tagged " + strconv.Quote(tag),
			"suggestions": tags.Suggest(tag, s.tags.Count(items), 0),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: summaries(matched), Total: len(matched)})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	items, ok := s.scope(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": content.Categories(items)})
}

func summaries(items []*models.Item) []*models.Item {
	out := make([]*models.Item, len(items))
	for i, it := range items {
		out[i] = it.Summary()
	}
	return out
}

// intParam parses a positive integer query value.
func intParam(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
