// Package fake provides an in-memory stand-in for the GitHub releases API for use in
// tests. It keeps releases per repository so create-then-find flows behave like the
// real service.
package fake

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/go-github/v75/github"
)

// Call records one request received by the server
type Call struct {
	Method        string
	Path          string
	Authorization string
}

// config holds internal server configuration
type config struct {
	token  string
	nextID int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithToken makes the server reject requests without "Authorization: token <token>"
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithFirstID sets the ID assigned to the first created release
func WithFirstID(id int64) Option {
	return func(c *config) {
		c.nextID = id
	}
}

// Server is an http.Handler serving /repos/{owner}/{repo}/releases
type Server struct {
	router chi.Router
	token  string

	mu       sync.Mutex
	nextID   int64
	releases map[string][]*github.RepositoryRelease
	calls    []Call
}

// New creates a new fake server
func New(opts ...Option) *Server {
	cfg := &config{
		nextID: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{
		token:    cfg.token,
		nextID:   cfg.nextID,
		releases: make(map[string][]*github.RepositoryRelease),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.record)
	router.Use(s.authenticate)
	router.Use(middleware.SetHeader("Content-Type", "application/json; charset=utf-8"))

	router.Post("/repos/{owner}/{repo}/releases", s.handleCreate)
	router.Get("/repos/{owner}/{repo}/releases", s.handleList)
	// GitHub Enterprise style prefix
	router.Post("/api/v3/repos/{owner}/{repo}/releases", s.handleCreate)
	router.Get("/api/v3/repos/{owner}/{repo}/releases", s.handleList)

	s.router = router
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddRelease stores a release as if it had been created earlier and returns its ID
func (s *Server) AddRelease(owner, repo, tag string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addRelease(owner+"/"+repo, tag).GetID()
}

// Calls returns a copy of the requests received so far
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// CountCalls returns how many requests used the method
func (s *Server) CountCalls(method string) int {
	var n int
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "token "+s.token {
			writeJSON(w, http.StatusUnauthorized, &github.ErrorResponse{
				Message:          "Bad credentials",
				DocumentationURL: "https://docs.github.com/rest",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")

	var req github.RepositoryRelease
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GetTagName() == "" {
		writeJSON(w, http.StatusUnprocessableEntity, &github.ErrorResponse{
			Message: "Validation Failed",
			Errors: []github.Error{
				{Resource: "Release", Field: "tag_name", Code: "missing_field"},
			},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findRelease(key, req.GetTagName()) != nil {
		writeJSON(w, http.StatusUnprocessableEntity, &github.ErrorResponse{
			Message: "Validation Failed",
			Errors: []github.Error{
				{Resource: "Release", Field: "tag_name", Code: "already_exists"},
			},
			DocumentationURL: "https://docs.github.com/rest/releases/releases#create-a-release",
		})
		return
	}

	release := s.addRelease(key, req.GetTagName())
	if req.Name != nil {
		release.Name = req.Name
	}
	writeJSON(w, http.StatusCreated, release)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")

	s.mu.Lock()
	stored := s.releases[key]
	// Newest first, as GitHub lists them
	list := make([]*github.RepositoryRelease, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		list = append(list, stored[i])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

// addRelease must be called with mu held
func (s *Server) addRelease(key, tag string) *github.RepositoryRelease {
	release := &github.RepositoryRelease{
		ID:      github.Ptr(s.nextID),
		TagName: github.Ptr(tag),
		Name:    github.Ptr(tag),
	}
	s.nextID++
	s.releases[key] = append(s.releases[key], release)
	return release
}

// findRelease must be called with mu held
func (s *Server) findRelease(key, tag string) *github.RepositoryRelease {
	for _, r := range s.releases[key] {
		if r.GetTagName() == tag {
			return r
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
