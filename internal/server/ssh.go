package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gliderlabs/ssh"

	"yaraycaster/internal/frame"
	"yaraycaster/internal/player"
	"yaraycaster/internal/projector"
	"yaraycaster/internal/stream"
	"yaraycaster/internal/terminal"
	"yaraycaster/internal/threading/core"
	"yaraycaster/internal/world"
)

// Level is the shared, read-only map every session plays on.
type Level struct {
	Map   *world.GridMap
	Spawn world.Spawn
}

// SSHServer gives each session its own player in a shared level and streams
// it ANSI frames.
type SSHServer struct {
	addr    string
	hostKey string
	level   Level
	opts    frame.Options
	palette terminal.Palette
	fps     int

	// Hub, when set, receives every session's frames.
	Hub *stream.Hub

	sessions *core.SafeCounter
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, level Level, opts frame.Options, pal terminal.Palette, fps int) *SSHServer {
	if fps <= 0 {
		fps = 30
	}
	return &SSHServer{
		addr:     addr,
		hostKey:  hostKey,
		level:    level,
		opts:     opts,
		palette:  pal,
		fps:      fps,
		sessions: core.NewSafeCounter(),
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := s.sessionName(sess.User())
	log.Printf("Player connected: %s", username)
	defer log.Printf("Player disconnected: %s", username)

	resize := make(chan [2]int, 1)
	go func() {
		for win := range winCh {
			select {
			case resize <- [2]int{win.Width, win.Height}:
			default:
			}
		}
	}()

	if err := s.play(sess, username, ptyReq.Window.Width, ptyReq.Window.Height, resize); err != nil {
		log.Printf("Session %s ended: %v", username, err)
	}
}

// sessionName numbers sessions so that a user connected twice stays
// distinguishable on the stream.
func (s *SSHServer) sessionName(user string) string {
	if user == "" {
		user = "Anonymous"
	}
	return fmt.Sprintf("%s#%d", user, s.sessions.Increment())
}

// play runs one session until the client quits or the connection fails.
// Input arrives as raw key bytes on rw; frames are written back to it.
func (s *SSHServer) play(rw io.ReadWriter, name string, w, h int, resize <-chan [2]int) error {
	pl, err := frame.NewPipeline(s.level.Map, s.level.Spawn, s.opts.ForGrid(w, h))
	if err != nil {
		return err
	}
	defer frame.LogStats(name, pl.Monitor)

	io.WriteString(rw, terminal.EnableAltScreen())
	io.WriteString(rw, terminal.HideCursor())
	io.WriteString(rw, terminal.ClearScreen())
	defer func() {
		io.WriteString(rw, terminal.ShowCursor())
		io.WriteString(rw, terminal.DisableAltScreen())
	}()

	var mu sync.Mutex
	var pending player.CommandSet
	quitCh := make(chan struct{})

	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := rw.Read(buf)
			if err != nil {
				return
			}
			cmds, quit := terminal.ParseInput(buf[:n])
			mu.Lock()
			pending |= cmds
			mu.Unlock()
			if quit {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-quitCh:
			return nil
		case size := <-resize:
			w, h = size[0], size[1]
			grid := s.opts.ForGrid(w, h)
			pl.Projector = projector.New(grid.Projector, grid.Textures)
			io.WriteString(rw, terminal.ClearScreen())
		case <-ticker.C:
			mu.Lock()
			cmds := pending
			pending = 0
			mu.Unlock()

			res := pl.Step(cmds)
			if s.Hub != nil {
				if _, err := s.Hub.Publish(name, res); err != nil {
					log.Printf("Warning: stream publish for %s: %v", name, err)
				}
			}
			out := terminal.Encode(terminal.Rasterize(res.Strips, w, h, s.palette))
			if _, err := io.WriteString(rw, out); err != nil {
				return err
			}
		}
	}
}
