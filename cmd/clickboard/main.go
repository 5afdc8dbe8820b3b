package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/clickboard/pkg"
	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/gui"
	"golang.org/x/term"
)

var (
	done = make(chan bool)
)

func main() {
	cfg, err := pkg.ParseClientFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	pkg.InitLog(cfg.LogPath, "CLIENT: ")
	log.Printf("New client, session %s", cfg.Session)

	theme, err := gui.ResolveTheme(cfg.Theme, cfg.ThemeFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal(err)
	}
	if cfg.PrintTheme {
		if err := gui.WriteThemes(os.Stdout, theme); err != nil {
			log.Fatal(err)
		}
		return
	}

	st := pkg.OpenStore(cfg.Store)
	if st != nil {
		defer st.Close()
	}

	b, err := pkg.LoadBoard(cfg, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal(err)
	}

	if cfg.Print {
		if err := pkg.PrintBoard(os.Stdout, b); err != nil {
			log.Fatal(err)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "clickboard needs an interactive terminal (try -print)")
		log.Fatal("stdin is not a terminal")
	}

	start, err := board.FromFEN(cfg.StartFEN())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal(err)
	}

	app := gui.New(b, gui.Options{Theme: theme, Flip: cfg.Flip, Start: start})
	pkg.LogEvents(app.Machine())
	if st != nil {
		pkg.Persist(app.Machine(), st, cfg.Session)
	}

	// Keep the client up
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP)
	go func() { // Down when receive killed signal
		<-sigc
		app.App.Stop()
	}()

	go func() {
		if err := app.Run(); err != nil {
			log.Printf("client stopped: %v", err)
		}
		done <- true
	}()

	<-done
	log.Printf("Client exited, session %s", cfg.Session)
}
