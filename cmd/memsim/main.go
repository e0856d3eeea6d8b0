package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viant/memsim"
	"github.com/viant/memsim/shell"
)

// Build info
var (
	version = "dev"
	commit  = "none"
)

func main() {
	configURL := flag.String("config", "", "config URL (yaml, toml or json)")
	envFile := flag.String("env", "", "optional dotenv file")
	flag.Parse()

	ctx := context.Background()
	cfg := memsim.DefaultConfig()
	if *configURL != "" {
		var err error
		if cfg, err = memsim.LoadConfig(ctx, *configURL); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	if err := memsim.ApplyEnv(cfg, envFiles...); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	log.Printf("memsim %s (%s), capacity: %dMB, time unit: %s", version, commit, cfg.Pool.CapacityMB, cfg.Runner.TimeUnit)
	srv, err := memsim.New(memsim.WithConfig(cfg), memsim.WithOutput(os.Stdout))
	if err != nil {
		log.Fatalf("failed to start simulator: %v", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- shell.New(srv, os.Stdin, os.Stdout).Run(ctx)
	}()
	select {
	case err = <-done:
		if err != nil {
			log.Printf("shell stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
