package pkg

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	EnvPrefix         = "CLICKBOARD_"
)

// Config carries everything either binary reads from flags or the
// environment. Flags win over CLICKBOARD_* variables.
type Config struct {
	LogPath string

	// client
	Theme      string
	ThemeFile  string
	Flip       bool
	FEN        string
	Store      string
	Session    string
	Print      bool
	PrintTheme bool

	// server
	ListenSSH string
	Binary    string
	HostKey   string
	Idle      time.Duration
}

func ParseClientFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.LogPath, "log", getenv("LOG", "./clickboard.log"), "path to log file")
	fs.StringVar(&cfg.Theme, "theme", getenv("THEME", "basic"), "color theme (basic, classic)")
	fs.StringVar(&cfg.ThemeFile, "theme-file", getenv("THEME_FILE", ""), "JSON file with extra themes (see -print-theme)")
	fs.BoolVar(&cfg.Flip, "flip", getenb("FLIP", false), "draw the board from Black's side")
	fs.StringVar(&cfg.FEN, "fen", getenv("FEN", ""), "start from this FEN placement instead of the standard layout")
	fs.StringVar(&cfg.Store, "store", getenv("STORE", ""), "directory to persist the board in (disabled when empty)")
	fs.StringVar(&cfg.Session, "session", getenv("SESSION", ""), "name the board is stored under")
	fs.BoolVar(&cfg.Print, "print", false, "print the board and exit")
	fs.BoolVar(&cfg.PrintTheme, "print-theme", false, "print the selected theme as JSON and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Session = SessionName(cfg.Session)
	return cfg, nil
}

func ParseServerFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.LogPath, "log", getenv("LOG", "./clickboard-server.log"), "path to log file")
	fs.StringVar(&cfg.ListenSSH, "listen-ssh", getenv("LISTEN_SSH", SshPort), "host SSH server on network address")
	fs.StringVar(&cfg.Binary, "clickboard", getenv("BINARY", "clickboard"), "path to clickboard client")
	fs.StringVar(&cfg.HostKey, "hostkey", getenv("HOSTKEY", ""), "SSH host key file (generated when empty)")
	fs.StringVar(&cfg.Store, "store", getenv("STORE", ""), "store directory handed to every session")
	fs.StringVar(&cfg.Theme, "theme", getenv("THEME", "basic"), "color theme handed to every session")
	fs.StringVar(&cfg.ThemeFile, "theme-file", getenv("THEME_FILE", ""), "theme file handed to every session")
	fs.DurationVar(&cfg.Idle, "idle", getenvd("IDLE", ServerIdleTimeout), "disconnect idle sessions after this long")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Binary == "" {
		return Config{}, fmt.Errorf("path to clickboard client is required (--clickboard)")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvd(key string, def time.Duration) time.Duration {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
