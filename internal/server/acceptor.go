package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// NewTLSListener binds the encrypted listening endpoint. The protocol version
// is pinned to TLS 1.3, whose cipher suites are fixed by the protocol, so
// nothing older or weaker can be negotiated. A bind or certificate failure
// here is fatal to startup.
func NewTLSListener(port int, certFile, keyFile string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load certificate pair: %w", err)
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
		MaxVersion:   tls.VersionTLS13,
	}
	ln, err := tls.Listen("tcp", fmt.Sprintf(":%d", port), cfg)
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return ln, nil
}

// Acceptor accepts connections and spawns an independent session per client.
// It never waits for a session to finish before accepting the next one.
type Acceptor struct {
	listener net.Listener
	deps     Deps
	log      zerolog.Logger
	nextID   atomic.Int64
}

func NewAcceptor(listener net.Listener, deps Deps) *Acceptor {
	return &Acceptor{listener: listener, deps: deps, log: deps.Logger}
}

// Serve runs the accept loop until ctx is cancelled. Cancellation stops
// accepting new connections; sessions already in progress keep running on
// their own connections. Per-connection accept errors are logged and the
// loop continues.
func (a *Acceptor) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		a.listener.Close()
	}()

	a.log.Info().Str("addr", a.listener.Addr().String()).Msg("accepting connections")
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				a.log.Info().Msg("acceptor stopped")
				return nil
			}
			a.log.Warn().Err(err).Msg("accept failed")
			continue
		}
		// The session number is diagnostic only.
		id := a.nextID.Add(1)
		go NewSession(id, conn, a.deps).Serve(ctx)
	}
}
