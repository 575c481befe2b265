// Package socketio provides a built-in module that bridges bus channels to a
// Socket.IO server: while started, every payload published on a configured
// channel is re-emitted as a Socket.IO event of the same name.
package socketio

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vk/modcore/core"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module owns one Socket.IO client connection between Start and Stop.
type Module struct {
	sb *core.Sandbox

	url            string
	namespace      string
	channels       []string
	connectTimeout time.Duration
	insecure       bool

	manager *socket.Manager
	io      *socket.Socket
	offs    []func()
}

// New is the module creator. Settings: "url" (required), "namespace"
// (default "/"), "channels" (list of bus channel names to forward,
// default none), "connect_timeout" (duration string, default "10s") and
// "insecure_skip_verify" (bool).
func New(sb *core.Sandbox, settings map[string]any) (any, error) {
	rawURL, _ := settings["url"].(string)
	if rawURL == "" {
		return nil, fmt.Errorf("socketio: setting %q is required", "url")
	}
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("socketio: failed to parse URL: %w", err)
	}

	namespace, _ := settings["namespace"].(string)
	if namespace == "" {
		namespace = "/"
	}

	var channels []string
	if raw, ok := settings["channels"].([]any); ok {
		for _, c := range raw {
			if name, ok := c.(string); ok && name != "" {
				channels = append(channels, name)
			}
		}
	}

	timeout := 10 * time.Second
	if raw, ok := settings["connect_timeout"].(string); ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("Failed to parse connect_timeout, using default 10s",
				"module", sb.ModuleID, "connect_timeout", raw, "error", err)
		} else {
			timeout = parsed
		}
	}

	insecure, _ := settings["insecure_skip_verify"].(bool)

	return &Module{
		sb:             sb,
		url:            rawURL,
		namespace:      namespace,
		channels:       channels,
		connectTimeout: timeout,
		insecure:       insecure,
	}, nil
}

// Start connects the client and subscribes the configured bus channels. It
// blocks until the connection is established or the connect timeout fires.
func (m *Module) Start() error {
	if m.io != nil {
		return nil
	}
	logger := slog.With("module", m.sb.ModuleID, "url", m.url, "namespace", m.namespace)
	logger.Debug("Connecting Socket.IO bridge")

	parsedURL, err := url.Parse(m.url)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if m.insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	m.manager = socket.NewManager(baseURL, opts)
	m.io = m.manager.Socket(m.namespace, opts)

	connected := make(chan error, 1)
	m.io.On(types.EventName("connect"), func(...any) {
		logger.Info("Socket.IO bridge connected", "sid", m.io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	m.io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	m.io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			m.teardown()
			return err
		}
	case <-time.After(m.connectTimeout):
		m.teardown()
		return fmt.Errorf("timed out while waiting for initial connection")
	}

	for _, channel := range m.channels {
		name := channel
		off := m.sb.On(name, func(args ...any) {
			m.io.Emit(name, args...)
		})
		m.offs = append(m.offs, off)
	}
	return nil
}

// Stop drops the bus subscriptions and disconnects the client.
func (m *Module) Stop() error {
	m.teardown()
	return nil
}

func (m *Module) teardown() {
	for _, off := range m.offs {
		off()
	}
	m.offs = nil
	if m.io != nil {
		m.io.Disconnect()
		m.io = nil
	}
	m.manager = nil
}
