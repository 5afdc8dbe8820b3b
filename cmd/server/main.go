package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/clickboard/pkg"
)

var (
	done = make(chan bool)
)

func main() {
	cfg, err := pkg.ParseServerFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	pkg.InitLog(cfg.LogPath, "SERVER: ")
	log.Println("Server started")

	s, err := pkg.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		log.Printf("Listening for SSH at %s", cfg.ListenSSH)
		if err := s.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			log.Panic(err)
		}
	}()

	// Keep the server run
	sigc := make(chan os.Signal, 1)
	// Wait for teminate signal
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		done <- true
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Server stopped")
}
