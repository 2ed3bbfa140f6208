// Package githubtest provides an in-memory fake of the GitHub contents API
// with real compare-and-swap sha semantics, for use in tests.
package githubtest

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// BlobSHA computes the git blob sha of content, the token the real API uses.
func BlobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

type file struct {
	content []byte
	sha     string
}

// Server emulates the contents endpoint of one repository.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	files   map[string]file
	puts    int
	gets    int
	nextGet int // injected status for the next GET, 0 means none
	nextPut int // injected status for the next PUT, 0 means none
}

func New() *Server {
	s := &Server{files: make(map[string]file)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Seed stores content at path without going through the API.
func (s *Server) Seed(path string, content []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sha := BlobSHA(content)
	s.files[path] = file{content: content, sha: sha}
	return sha
}

// Content returns the current stored bytes at path.
func (s *Server) Content(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	return f.content, ok
}

// SHA returns the current blob sha at path.
func (s *Server) SHA(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[path].sha
}

// Puts reports how many PUT requests were handled.
func (s *Server) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// FailNextGet makes the next GET answer with the given status.
func (s *Server) FailNextGet(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGet = status
}

// FailNextPut makes the next PUT answer with the given status.
func (s *Server) FailNextPut(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPut = status
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	// /repos/{owner}/{repo}/contents/{path}
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 5)
	if len(parts) < 5 || parts[0] != "repos" || parts[3] != "contents" {
		http.NotFound(w, r)
		return
	}
	path := parts[4]

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, path)
	case http.MethodPut:
		s.handlePut(w, r, path)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++

	if s.nextGet != 0 {
		status := s.nextGet
		s.nextGet = 0
		writeError(w, status, "injected failure")
		return
	}

	f, ok := s.files[path]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		// the real API wraps base64 at 60 columns
		"content":  wrap(base64.StdEncoding.EncodeToString(f.content), 60),
		"sha":      f.sha,
		"encoding": "base64",
	})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++

	if s.nextPut != 0 {
		status := s.nextPut
		s.nextPut = 0
		writeError(w, status, "injected failure")
		return
	}

	var req struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Branch  string `json:"branch"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, "content is not base64")
		return
	}

	existing, exists := s.files[path]
	switch {
	case exists && req.SHA == "":
		writeError(w, http.StatusUnprocessableEntity, `"sha" wasn't supplied`)
		return
	case exists && req.SHA != existing.sha:
		writeError(w, http.StatusConflict, path+" does not match "+req.SHA)
		return
	case !exists && req.SHA != "":
		writeError(w, http.StatusUnprocessableEntity, path+" does not exist")
		return
	}

	sha := BlobSHA(content)
	s.files[path] = file{content: content, sha: sha}

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"content": map[string]any{"sha": sha},
		"commit":  map[string]any{"message": req.Message},
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func wrap(s string, width int) string {
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\n")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
