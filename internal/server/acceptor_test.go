package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"
)

func dialAndLogin(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	creds, _ := json.Marshal(Login{Username: "Madi", Password: "madi1234"})
	req, _ := json.Marshal(Request{Type: RequestLogin, Content: string(creds)})
	if _, err := conn.Write(append(req, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	raw, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if resp.Status != StatusToken {
		return fmt.Errorf("expected TOKEN, got %+v", resp)
	}
	return nil
}

func TestAcceptorServesParallelConnections(t *testing.T) {
	env := newTestEnv(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	acceptor := NewAcceptor(ln, env.deps)

	done := make(chan error, 1)
	go func() { done <- acceptor.Serve(ctx) }()

	addr := ln.Addr().String()
	finished := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() { finished <- dialAndLogin(addr) }()
	}
	for i := 0; i < 3; i++ {
		select {
		case err := <-finished:
			if err != nil {
				t.Fatalf("connection %d: %v", i, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("connection %d never finished", i)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("acceptor did not stop after cancellation")
	}

	// New connections must be refused once the acceptor stopped.
	if conn, err := net.DialTimeout("tcp", addr, time.Second); err == nil {
		conn.Close()
		t.Fatalf("expected dial to fail after shutdown")
	}
}
