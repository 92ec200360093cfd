// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/projectagentis/agentis/lib/config"
	"github.com/projectagentis/agentis/lib/logging"
	"github.com/projectagentis/agentis/lib/process"
	"github.com/projectagentis/agentis/lib/service"
	"github.com/projectagentis/agentis/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		process.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var configPath string
	var verbose, showVersion, showHelp bool

	flagSet := pflag.NewFlagSet("agentis-app", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML configuration file (default: $"+config.EnvironmentVariable+")")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&showHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if showHelp {
		fmt.Fprintf(stdout, "agentis-app - reference Agentis application (echo responder)\n\nUsage:\n  agentis-app [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
		return nil
	}
	if showVersion {
		version.Print(stdout, "agentis-app")
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, source, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger, logCloser, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	target, err := cfg.ResolveEndpoint()
	if err != nil {
		return err
	}
	logger.Info("application starting",
		"version", version.Info(),
		"config", source,
		"endpoint", target.Address,
	)

	responder := &responder{logger: logger}
	server := service.NewSocketServer(target, responder.serve, logger, service.SocketServerOptions{
		AcceptRetryDelay: cfg.Listener.AcceptRetryDelay.Std(),
	})
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("application listener: %w", err)
	}
	logger.Info("application stopped")
	return nil
}
