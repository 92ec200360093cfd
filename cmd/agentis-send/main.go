// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/projectagentis/agentis/lib/config"
	"github.com/projectagentis/agentis/lib/endpoint"
	"github.com/projectagentis/agentis/lib/frame"
	"github.com/projectagentis/agentis/lib/logging"
	"github.com/projectagentis/agentis/lib/process"
	"github.com/projectagentis/agentis/lib/schema"
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

type options struct {
	configPath  string
	action      string
	taskPath    string
	messagePath string
	taskID      string
	timeout     time.Duration
	verbose     bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	var showVersion, showHelp bool

	flagSet := pflag.NewFlagSet("agentis-send", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to the YAML configuration file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&opts.action, "action", "", "message action (default: ping, or perform_task with --task)")
	flagSet.StringVar(&opts.taskPath, "task", "", "JSONC task definition to send as perform_task")
	flagSet.StringVar(&opts.messagePath, "message", "", "JSONC message to send as written")
	flagSet.StringVar(&opts.taskID, "task-id", "", "task id (default: a random UUID)")
	flagSet.DurationVar(&opts.timeout, "timeout", 10*time.Second, "how long to wait for the response")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&showHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if showHelp {
		fmt.Fprintf(stdout, `agentis-send - send one message to the Agentis application

Usage:
  agentis-send [flags]

Flags:
%s
Examples:
  # Check that the application is listening
  agentis-send

  # Run a task written in JSONC
  agentis-send --task examples/search.jsonc
`, flagSet.FlagUsages())
		return nil
	}
	if showVersion {
		version.Print(stdout, "agentis-send")
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	message, err := buildMessage(opts)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	cfg, _, err := config.Load(opts.configPath)
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

	response, err := send(ctx, cfg, logger, payload, opts.timeout)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, response, "", "  "); err != nil {
		// Not JSON: print it as received.
		pretty.Reset()
		pretty.Write(response)
	}
	pretty.WriteByte('\n')
	_, err = stdout.Write(pretty.Bytes())
	return err
}

// buildMessage assembles the outgoing message from the flags.
func buildMessage(opts options) (*schema.Message, error) {
	if opts.taskPath != "" && opts.messagePath != "" {
		return nil, errors.New("--task and --message are mutually exclusive")
	}

	var message *schema.Message
	switch {
	case opts.messagePath != "":
		data, err := os.ReadFile(opts.messagePath)
		if err != nil {
			return nil, fmt.Errorf("reading message: %w", err)
		}
		message, err = schema.ParseMessage(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.messagePath, err)
		}
	case opts.taskPath != "":
		data, err := os.ReadFile(opts.taskPath)
		if err != nil {
			return nil, fmt.Errorf("reading task: %w", err)
		}
		task, err := schema.ParseTask(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.taskPath, err)
		}
		message = &schema.Message{Action: schema.ActionPerformTask, Task: task}
	default:
		message = &schema.Message{Action: schema.ActionPing}
	}

	if opts.action != "" {
		message.Action = opts.action
	}
	if opts.taskID != "" {
		message.TaskID = opts.taskID
	}
	if message.TaskID == "" {
		message.TaskID = uuid.NewString()
	}
	if message.Version == 0 {
		message.Version = schema.SchemaVersion
	}
	return message, nil
}

// send connects with the configured retry policy, writes one frame,
// and returns the first response frame.
func send(ctx context.Context, cfg *config.Config, logger *slog.Logger, payload []byte, timeout time.Duration) ([]byte, error) {
	target, err := cfg.ResolveEndpoint()
	if err != nil {
		return nil, err
	}
	dialer := &endpoint.Dialer{Policy: cfg.RetryPolicy(), Logger: logger}
	conn, err := dialer.Connect(ctx, target)
	if err != nil {
		if errors.Is(err, endpoint.ErrRetriesExhausted) {
			return nil, process.WithCode(process.ExitUnavailable, err)
		}
		return nil, err
	}
	defer conn.Close()

	if err := frame.Write(conn, payload); err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}
	logger.Debug("message sent", schema.LogAttrs(payload)...)

	if timeout > 0 {
		conn.SetReadDeadline(time.Now().Add(timeout))
	}
	response, err := frame.Read(conn)
	if err == io.EOF {
		return nil, errors.New("application closed the connection without responding")
	}
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return response, nil
}
