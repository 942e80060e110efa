// Package server is the HTTP gateway: the public read endpoint, the
// authenticated manual refresh, and the blog pages.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/epf-2025/blogpress/internal/pipeline"
	"github.com/epf-2025/blogpress/internal/post"
	"github.com/epf-2025/blogpress/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var md = goldmark.New()

// Server routes API and blog traffic. A nil store degrades reads to
// empty lists and makes refreshes fail with a configuration error.
type Server struct {
	store *store.Store
	pipe  *pipeline.Pipeline
	token string
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a Server. token guards the refresh endpoint; when empty
// the endpoint is open.
func New(s *store.Store, pipe *pipeline.Pipeline, token string) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"blog_index.html", "blog_post.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	srv := &Server{store: s, pipe: pipe, token: token, pages: pages, mux: http.NewServeMux()}
	srv.routes()
	return srv, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/generated-posts", s.handleGeneratedPosts)
	s.mux.HandleFunc("/api/generated-posts/refresh", s.handleRefresh)
	s.mux.HandleFunc("/api/posts", s.handleAllPosts)
	s.mux.HandleFunc("/blog", s.handleBlogIndex)
	s.mux.HandleFunc("/blog/", s.handleBlogPost)
}

// handleGeneratedPosts serves the generated cache as a JSON array. It
// never errors: a cold or unconfigured cache is an empty list.
func (s *Server) handleGeneratedPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.store.Load(r.Context())
	if posts == nil {
		posts = []post.Post{}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, posts)
}

// handleAllPosts serves the full catalog: generated posts merged with
// the built-in static guides, newest first.
func (s *Server) handleAllPosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, post.Merged(s.store.Load(r.Context())))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.store == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "persistence binding not configured",
		})
		return
	}

	if s.token != "" {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	created, err := s.pipe.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrUnconfigured) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "persistence binding not configured",
			})
			return
		}
		log.Printf("Refresh failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "skipped"})
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	posts := post.Merged(s.store.Load(r.Context()))
	s.render(w, "blog_index.html", map[string]any{
		"Posts": posts,
	})
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/blog/")
	if slug == "" {
		http.Redirect(w, r, "/blog", http.StatusFound)
		return
	}

	p, ok := post.BySlug(s.store.Load(r.Context()), slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.render(w, "blog_post.html", map[string]any{
		"Post": p,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(s *store.Store, pipe *pipeline.Pipeline, token string, port int) error {
	srv, err := New(s, pipe, token)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Server listening on %s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
