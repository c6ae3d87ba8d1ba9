package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/conclave-dev/conclave/internal/config"
	"github.com/conclave-dev/conclave/internal/gateway"
	"github.com/conclave-dev/conclave/internal/models"
)

func newServeCommand() *cobra.Command {
	var tcpAddr string
	var tcpAllowRemote bool
	var stdio bool
	var noInbox bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a gateway accepting task requests over NDJSON",
		Long: `Start a gateway accepting task requests over newline-delimited JSON.

Each request is an object like {"workspace": "/srv/repo", "text": "tidy up",
"mode": "exec"}. Every request is recorded in a SQLite inbox before any
session work starts, and answered with exactly one terminal response.

By default the gateway listens on the TCP address from .conclave.yaml.
TCP defaults to loopback (127.0.0.1) for security. Use --tcp-allow-remote
to bind to all interfaces, or --stdio to serve over stdin/stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if tcpAddr == "" {
				tcpAddr = cfg.Gateway.Addr
			}

			logger := slog.Default()

			var inbox *gateway.Inbox
			if !noInbox {
				inbox, err = gateway.OpenInbox(cfg.Gateway.Inbox)
				if err != nil {
					return err
				}
				defer inbox.Close() //nolint:errcheck
			}

			run := func(ctx context.Context, task models.Task) (models.SessionOutcome, error) {
				// A fresh controller per request keeps session state isolated.
				reqCfg := *cfg
				if task.RepoPath != "" {
					reqCfg.Repo = task.RepoPath
				}
				ctrl, closeStore, err := buildController(&reqCfg, false)
				if err != nil {
					return models.SessionOutcome{}, err
				}
				defer closeStore() //nolint:errcheck
				return ctrl.Run(ctx, task)
			}

			server, err := gateway.NewServer(run, inbox, logger)
			if err != nil {
				return err
			}

			if stdio {
				fmt.Fprintln(os.Stderr, "gateway running on stdio")
				server.ServeStdio(os.Stdin, os.Stdout)
				return nil
			}

			tcpAddr = resolveTCPAddr(tcpAddr, tcpAllowRemote, logger)
			listener, err := gateway.NewTCPListener(tcpAddr, server)
			if err != nil {
				return fmt.Errorf("failed to start gateway: %w", err)
			}
			defer listener.Close() //nolint:errcheck
			fmt.Fprintf(os.Stderr, "gateway listening on %s\n", listener.Addr())
			return listener.Serve()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "TCP address to listen on (default: from .conclave.yaml)")
	cmd.Flags().BoolVar(&tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the gateway to the network with no authentication)")
	cmd.Flags().BoolVar(&stdio, "stdio", false, "Serve over stdin/stdout instead of TCP")
	cmd.Flags().BoolVar(&noInbox, "no-inbox", false, "Skip the persistent inbox trail")

	return cmd
}

// resolveTCPAddr ensures TCP addresses default to loopback unless --tcp-allow-remote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *slog.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// Likely just a port like "9000"; treat as ":9000".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("gateway binding to all interfaces — no authentication is provided",
			"address", addr)
		return addr
	}

	// Default to loopback if no host specified or if 0.0.0.0/:: is used without --tcp-allow-remote.
	if host == "" || host == "0.0.0.0" || host == "::" {
		logger.Info("gateway listening on TCP (local only)")
		return net.JoinHostPort("127.0.0.1", port)
	}

	return addr
}
