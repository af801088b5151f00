// Package server provides the read-only HTTP API over the content pipeline.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/contentkit/internal/config"
	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/ranking"
	"github.com/hyperjump/contentkit/internal/tags"
	"github.com/hyperjump/contentkit/pkg/utils"
	"go.uber.org/zap"
)

// Server is the HTTP server for the content API. It keeps no content in memory:
// every request re-reads the content tree.
type Server struct {
	library      *content.Library
	ranker       *ranking.Ranker
	tags         *tags.Aggregator
	relatedLimit int
	config       *config.ServerConfig
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates a server with the given dependencies.
// relatedTagLimit <= 0 uses tags.DefaultRelatedLimit.
func NewServer(
	library *content.Library,
	ranker *ranking.Ranker,
	aggregator *tags.Aggregator,
	relatedTagLimit int,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	logger = utils.OrNop(logger)
	if relatedTagLimit <= 0 {
		relatedTagLimit = tags.DefaultRelatedLimit
	}
	return &Server{
		library:      library,
		ranker:       ranker,
		tags:         aggregator,
		relatedLimit: relatedTagLimit,
		config:       cfg,
		logger:       logger,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tags", s.handleTags)
		r.Get("/tags/by-collection", s.handleTagsByCollection)
		r.Get("/tags/{tag}/related", s.handleRelatedTags)
		r.Get("/tags/{tag}/items", s.handleTagItems)
		r.Get("/categories", s.handleCategories)
		r.Get("/related/{collection}/*", s.handleRelated)
		r.Get("/{collection}", s.handleList)
		r.Get("/{collection}/*", s.handleItem)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
