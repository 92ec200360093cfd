// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/projectagentis/agentis/bridge"
	"github.com/projectagentis/agentis/lib/config"
	"github.com/projectagentis/agentis/lib/endpoint"
	"github.com/projectagentis/agentis/lib/logging"
	"github.com/projectagentis/agentis/lib/process"
	"github.com/projectagentis/agentis/lib/schema"
	"github.com/projectagentis/agentis/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		process.Fatal(err)
	}
}

type options struct {
	configPath  string
	verbose     bool
	showVersion bool
	showHelp    bool

	// browserArguments are the positional arguments the browser
	// passes: the caller origin (Chrome) or the manifest path and
	// extension id (Firefox). Logged, never interpreted.
	browserArguments []string
}

// parseFlags parses the relay's own flags. Browsers append arguments
// the relay does not define (Chrome on Windows adds
// --parent-window=<hwnd>), so unknown flags are ignored rather than
// rejected.
func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var opts options
	flagSet := pflag.NewFlagSet("agentis-relay", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.ParseErrorsAllowlist.UnknownFlags = true
	flagSet.StringVar(&opts.configPath, "config", "", "path to the YAML configuration file (default: $"+config.EnvironmentVariable+")")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every relayed frame at debug level")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return opts, flagSet, err
	}
	opts.browserArguments = flagSet.Args()
	return opts, flagSet, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, flagSet, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printHelp(stderr, flagSet)
		return nil
	}
	if opts.showVersion {
		version.Print(stderr, "agentis-relay")
		return nil
	}

	cfg, source, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.verbose {
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
	logger.Info("relay starting",
		"version", version.Info(),
		"config", source,
		"endpoint", target.Address,
		"kind", target.Kind.String(),
		"browser_arguments", opts.browserArguments,
	)

	dialer := &endpoint.Dialer{
		Policy: cfg.RetryPolicy(),
		Logger: logger,
	}
	conn, err := dialer.Connect(ctx, target)
	if err != nil {
		if errors.Is(err, endpoint.ErrRetriesExhausted) {
			return process.WithCode(process.ExitUnavailable, err)
		}
		return err
	}
	logger.Info("connected to application", "endpoint", target.Address)

	native := bridge.Stream{
		Name:   "native",
		Reader: bufio.NewReader(stdin),
		Writer: bufio.NewWriter(stdout),
	}
	if closer, ok := stdin.(io.Closer); ok {
		native.Closer = closer
	}

	relay := &bridge.Bridge{
		A:             native,
		B:             bridge.Stream{Name: "ipc", Reader: conn, Writer: conn, Closer: conn},
		QueueCapacity: cfg.Relay.QueueCapacity,
		ShutdownGrace: cfg.Relay.ShutdownGrace.Std(),
		Logger:        logger,
		Annotate:      schema.LogAttrs,
	}
	result := relay.Run(ctx)
	if err := result.Err(); err != nil {
		return fmt.Errorf("relay stopped by %s: %w", result.First.Pump, err)
	}
	logger.Info("relay finished", "stopped_by", result.First.Pump)
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `agentis-relay - browser native-messaging host for Agentis

The browser starts this program and talks to it over stdin and stdout.
It connects to the Agentis application's local endpoint and relays
length-prefixed JSON messages in both directions.

Usage:
  agentis-relay [flags] [browser arguments...]

Flags:
%s
Configuration is read from --config, else $%s, else built-in
defaults. Logs go to stderr and, if log.file is set, to that file.
`, flagSet.FlagUsages(), config.EnvironmentVariable)
}
