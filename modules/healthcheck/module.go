// Package healthcheck provides a built-in module that serves an HTTP
// liveness endpoint while started, so orchestrators can probe a composed
// long-running host.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vk/modcore/core"
)

// Module owns the listener and server between Start and Stop.
type Module struct {
	sb   *core.Sandbox
	port int
	path string

	ln  net.Listener
	srv *http.Server
}

// New is the module creator. Settings: "port" (number, default 8080; 0 binds
// an ephemeral port) and "path" (string, default "/health").
func New(sb *core.Sandbox, settings map[string]any) (any, error) {
	port := 8080
	switch raw := settings["port"].(type) {
	case float64:
		port = int(raw)
	case int:
		port = raw
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("healthcheck: port %d out of range", port)
	}

	path, _ := settings["path"].(string)
	if path == "" {
		path = "/health"
	}

	return &Module{sb: sb, port: port, path: path}, nil
}

// Start binds the listener and serves in a goroutine. A bind failure is
// returned synchronously; starting an already-started module is a no-op.
func (m *Module) Start() error {
	if m.srv != nil {
		return nil
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", m.port))
	if err != nil {
		return fmt.Errorf("failed to bind health endpoint: %w", err)
	}
	m.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc(m.path, m.handle)
	m.srv = &http.Server{Handler: mux}

	go func(srv *http.Server) {
		slog.Info("🩺 Health check server starting",
			"module", m.sb.ModuleID, "address", fmt.Sprintf("http://localhost%s%s", addrPort(ln), m.path))
		// Serve returns ErrServerClosed on graceful shutdown; anything else
		// is a genuine failure.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health check server failed unexpectedly",
				"module", m.sb.ModuleID, "error", err)
		}
	}(m.srv)

	return nil
}

// Addr returns the bound listener address while started, e.g. for probing an
// ephemeral port. Empty when the module is not running.
func (m *Module) Addr() string {
	if m.ln == nil {
		return ""
	}
	return m.ln.Addr().String()
}

// Stop shuts the server down gracefully, draining in-flight probes.
func (m *Module) Stop() error {
	if m.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("🩺 Shutting down health check server...", "module", m.sb.ModuleID)
	err := m.srv.Shutdown(ctx)
	m.srv = nil
	m.ln = nil
	if err != nil {
		return fmt.Errorf("health check server shutdown failed: %w", err)
	}
	return nil
}

func (m *Module) handle(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Health check endpoint hit.",
		"module", m.sb.ModuleID, "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func addrPort(ln net.Listener) string {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf(":%d", addr.Port)
	}
	return ln.Addr().String()
}
