package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"laborreport/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAddr is the listen address when none is configured
const DefaultAddr = "127.0.0.1:4000"

// ServerOptions configures the Server
type ServerOptions struct {
	Addr string
	// AllowedOrigins enables CORS for browser dashboards; empty disables it
	AllowedOrigins []string
	// SlowRequest marks slow requests at warn level in the access log
	SlowRequest time.Duration
}

// Server is a thin wrapper over chi and the stdlib server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server with request ids, recovery, access logs and
// optional CORS already installed
func NewServer(o ServerOptions) *Server {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	m := chi.NewRouter()
	m.Use(middleware.RequestID, RecoverJSON, AccessLog(o.SlowRequest))
	if len(o.AllowedOrigins) > 0 {
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins: o.AllowedOrigins,
			AllowedMethods: []string{stdhttp.MethodGet, stdhttp.MethodHead, stdhttp.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	m.NotFound(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		JSON(w, stdhttp.StatusNotFound, Envelope{
			StatusCode: stdhttp.StatusNotFound,
			Status:     stdhttp.StatusText(stdhttp.StatusNotFound),
			Error:      "route not found",
			RequestID:  middleware.GetReqID(r.Context()),
		})
	})
	return &Server{
		addr: o.Addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              o.Addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns a Router facade over the chi mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("http shutting down")
		return s.srv.Shutdown(shutdownCtx)
	}
}
