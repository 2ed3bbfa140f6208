// Package httpapi exposes the backend over HTTP/JSON. Handlers are thin:
// they validate input, call a domain service, and translate sentinel errors
// into status codes and the {success, message} envelope.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/analytics"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/broadcasts"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/config"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/keys"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr       string
	repository string // "owner/name", reported by the status endpoint
	logger     logging.Logger
	users      *users.Service
	keys       *keys.Service
	broadcasts *broadcasts.Service
	analytics  *analytics.Service
	jwtSecret  []byte
}

func NewServer(cfg *config.Config, l logging.Logger, us *users.Service, ks *keys.Service, bs *broadcasts.Service, as *analytics.Service) *Server {
	return &Server{
		addr:       cfg.Addr,
		repository: cfg.RepoOwner + "/" + cfg.RepoName,
		logger:     l.With("module", "http_server"),
		users:      us,
		keys:       ks,
		broadcasts: bs,
		analytics:  as,
		jwtSecret:  []byte(cfg.SecretKey),
	}
}

// Handler builds the route table. Split from Run so tests can drive the
// mux through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/sync-stats", s.handleSyncStats)
	mux.HandleFunc("/api/broadcasts", s.handleBroadcasts)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/analytics", s.handleAnalytics)
	mux.HandleFunc("/api/admin/keys", s.requireAdmin(s.handleCreateKeys))
	mux.HandleFunc("/api/admin/broadcasts", s.requireAdmin(s.handleCreateBroadcast))

	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
