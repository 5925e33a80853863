package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with the service's timeout defaults. The
// write timeout must stay above the generation budget or long image batches
// get cut off mid-response.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	return &HTTPServer{server: srv}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown stops accepting new connections and drains in-flight requests
// until the context expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
