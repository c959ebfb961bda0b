package server

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"yaraycaster/internal/config"
	"yaraycaster/internal/frame"
	"yaraycaster/internal/stream"
	"yaraycaster/internal/terminal"
)

// syncBuffer collects session output written from another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type pipeConn struct {
	io.Reader
	io.Writer
}

func testServer(t *testing.T) *SSHServer {
	t.Helper()
	cfg := config.DefaultConfig()
	m, spawn, err := frame.LoadLevel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return NewSSHServer(":0", "host_key", Level{Map: m, Spawn: spawn},
		frame.OptionsFromConfig(cfg, nil, nil), terminal.Palette{Depth: 512}, 60)
}

func waitForOutput(t *testing.T, out *syncBuffer, want string, n int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for strings.Count(out.String(), want) < n {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %d x %q", n, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPlay_RendersUntilQuit(t *testing.T) {
	s := testServer(t)
	inR, inW := io.Pipe()
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- s.play(pipeConn{inR, out}, "tester#1", 80, 24, make(chan [2]int))
	}()

	waitForOutput(t, out, terminal.Reset, 2)
	if !strings.HasPrefix(out.String(), terminal.EnableAltScreen()) {
		t.Error("Expected the session to switch to the alternate screen first")
	}

	inW.Write([]byte("q"))
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected a clean quit, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Session did not end after q")
	}
	if !strings.HasSuffix(out.String(), terminal.DisableAltScreen()) {
		t.Error("Expected the terminal to be restored")
	}
	inW.Close()
}

func TestPlay_ResizeAndDisconnect(t *testing.T) {
	s := testServer(t)
	inR, inW := io.Pipe()
	out := &syncBuffer{}
	resize := make(chan [2]int, 1)

	done := make(chan error, 1)
	go func() {
		done <- s.play(pipeConn{inR, out}, "tester#2", 80, 24, resize)
	}()

	waitForOutput(t, out, terminal.Reset, 1)
	resize <- [2]int{40, 10}
	waitForOutput(t, out, terminal.ClearScreen(), 2)

	inW.Write([]byte("w\x1b[D"))
	inW.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected a clean end on EOF, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Session did not end on EOF")
	}
}

func TestSessionName_NumbersEachSession(t *testing.T) {
	s := testServer(t)
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice#1"},
		{"alice", "alice#2"},
		{"", "Anonymous#3"},
	}
	for _, tt := range tests {
		if got := s.sessionName(tt.user); got != tt.want {
			t.Errorf("sessionName(%q): expected %q, got %q", tt.user, tt.want, got)
		}
	}
}

func TestPlay_PublishesSessionFrames(t *testing.T) {
	s := testServer(t)
	s.Hub = stream.NewHub()
	srv := httptest.NewServer(s.Hub)
	defer srv.Close()
	defer s.Hub.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()
	deadline := time.Now().Add(3 * time.Second)
	for s.Hub.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the spectator")
		}
		time.Sleep(5 * time.Millisecond)
	}

	inR, inW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- s.play(pipeConn{inR, &syncBuffer{}}, "bob#7", 80, 24, make(chan [2]int))
	}()

	ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	var snap frame.Snapshot
	if err := ws.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if snap.Session != "bob#7" {
		t.Errorf("Expected frames tagged bob#7, got %q", snap.Session)
	}

	inW.Write([]byte("q"))
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Session did not end after q")
	}
	inW.Close()
}
