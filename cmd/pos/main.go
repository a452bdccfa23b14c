package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelmondragon/burgershop-backend/internal/bootstrap"
	"github.com/angelmondragon/burgershop-backend/internal/console"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/security"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos", Output: os.Stderr})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "run", "command: run|hash-password")
	password := flag.String("password", "", "plain password to hash (for hash-password)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "pos",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	switch *cmd {
	case "hash-password":
		if *password == "" {
			fmt.Fprintln(os.Stderr, "missing -password for hash-password")
			os.Exit(1)
		}
		encoded, err := security.HashPassword(*password, cfg.Password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s=%s\n", config.EnvAdminPasswordHash, encoded)
		return

	case "run":
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Build(ctx, cfg, logg, nil)
	requireResource(ctx, logg, "session manager", err)
	defer rt.Close()

	pos, err := console.New(rt.Manager, os.Stdin, os.Stdout, logg)
	requireResource(ctx, logg, "console", err)

	if err := pos.Run(ctx); err != nil && ctx.Err() == nil {
		logg.Error(ctx, "console stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
