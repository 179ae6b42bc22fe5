package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/config"
	apperrors "github.com/byteforge/aegis-frontend/internal/errors"
	"github.com/byteforge/aegis-frontend/internal/logging"
	"github.com/byteforge/aegis-frontend/internal/metrics"
	"github.com/byteforge/aegis-frontend/webstore"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	logger  logging.Logger
	metrics *metrics.Metrics
	store   *webstore.Store
}

func New(cfg config.Config, logger logging.Logger, m *metrics.Metrics) (*Server, error) {
	if cfg.GetSessionSecret() == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "[Server New] SESSION_SECRET is not configured")
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		logger:  logger,
		metrics: m,
		store:   webstore.New(cfg.GetSessionSecret(), cfg.GetMaxSessionAge(), cfg.GetEnv() == "PROD"),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// backendClient builds an unauthenticated client for the aegis backend.
// Handlers construct their own client per request; no client state is
// shared across requests.
func (s *Server) backendClient() *aegis.Client {
	return aegis.New(s.config.GetBackendURL())
}

// bearerClient builds a client that forwards the caller's bearer token.
func (s *Server) bearerClient(token string) *aegis.Client {
	c := s.backendClient()
	c.SetAuthToken(token)
	return c
}

// masterClient builds a client authenticated with the server-held
// master key for cross-site operations.
func (s *Server) masterClient() *aegis.Client {
	return aegis.New(s.config.GetBackendURL(), aegis.WithMasterKey(s.config.GetMasterAPIKey()))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
