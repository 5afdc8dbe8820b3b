package pkg

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// Server hands every SSH session its own clickboard process on a pty.
type Server struct {
	*ssh.Server
	cfg Config
}

func NewServer(cfg Config) (*Server, error) {
	s := &Server{cfg: cfg}
	s.Server = &ssh.Server{
		Addr:        cfg.ListenSSH,
		IdleTimeout: cfg.Idle,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if cfg.HostKey != "" {
		if err := s.SetOption(ssh.HostKeyFile(cfg.HostKey)); err != nil {
			return nil, fmt.Errorf("host key %s: %w", cfg.HostKey, err)
		}
	}
	return s, nil
}

// SessionArgs are the command line arguments the client is started with for
// the named session. Each session gets its own store directory under the
// configured one since badger locks a directory to a single process.
func (s *Server) SessionArgs(session string) []string {
	args := []string{"-session", session}
	if s.cfg.Store != "" {
		args = append(args, "-store", filepath.Join(s.cfg.Store, sessionDir(session)))
	}
	if s.cfg.Theme != "" {
		args = append(args, "-theme", s.cfg.Theme)
	}
	if s.cfg.ThemeFile != "" {
		args = append(args, "-theme-file", s.cfg.ThemeFile)
	}
	return args
}

// sessionDir turns a session name into a single path element.
func sessionDir(session string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, session)
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "failed to start clickboard: non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	name := SessionName(sess.User())
	log.Printf("session %s opened from %s", name, sess.RemoteAddr())
	defer log.Printf("session %s closed", name)

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.cfg.Binary, s.SessionArgs(name)...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		log.Printf("session %s: failed to start client: %v", name, err)
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				log.Printf("session %s: resize: %v", name, err)
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		log.Printf("session %s: client exited: %v", name, err)
	}
}
