package web

import (
	"net/http"
)

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// Handler wraps h with the middleware the configuration asks for.
func (c ServerConfig) Handler(h http.Handler) http.Handler {
	if c.DevMode {
		return WithDevCORS(h)
	}
	return h
}

// NewServer builds the API server for cfg. An empty listen address disables it.
func NewServer(cfg ServerConfig, deps APIV1Deps) Server {
	if cfg.ListenAddr == "" {
		return &NoopServer{}
	}
	srv := NewHTTPServer(cfg.ListenAddr, cfg.Handler(NewDefaultMux(deps)))
	srv.Logger = deps.Logger
	return srv
}
