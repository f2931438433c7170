package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/0xReLogic/livepage/internal/config"
	"github.com/0xReLogic/livepage/internal/logging"
	"github.com/0xReLogic/livepage/internal/page"
)

// ErrBind is wrapped by every error returned when the listening socket cannot be acquired.
var ErrBind = errors.New("bind failed")

// Server serves the success page.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the request router. Anything other than GET or HEAD on /
// gets chi's default 404 or 405.
func NewRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logging.RequestContextMiddleware(cfg.Logging))
	r.Use(logging.AccessLog)
	r.Use(chimw.GetHead)

	r.Get("/", page.Handler)

	return r
}

// New creates the server with the configured transport timeouts.
func New(cfg *config.Config) *Server {
	timeouts := cfg.Server.Timeouts
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      NewRouter(cfg),
			ReadTimeout:  timeouts.ReadTimeout(),
			WriteTimeout: timeouts.WriteTimeout(),
			IdleTimeout:  timeouts.IdleTimeout(),
		},
	}
}

// Listen binds the configured address.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %w", ErrBind, s.httpServer.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until the server is closed or the listener fails.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// ListenAndServe binds and serves. It only returns on failure.
func (s *Server) ListenAndServe() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}

	logger := logging.L()
	logger.Info().
		Str("addr", ln.Addr().String()).
		Dur("read_timeout", s.httpServer.ReadTimeout).
		Dur("write_timeout", s.httpServer.WriteTimeout).
		Dur("idle_timeout", s.httpServer.IdleTimeout).
		Msg("listening for http")

	return s.Serve(ln)
}

// Close stops the server immediately, dropping open connections.
func (s *Server) Close() error {
	return s.httpServer.Close()
}
