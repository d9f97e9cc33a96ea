package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kwsp/internal/server"
)

var (
	flagServeAddr   string
	flagServeRecent int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeRecent, "recent", 50, "Calculations kept for /v1/calculations")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := flagServeAddr
	if addr == "" {
		addr = appCfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := server.New(server.Config{
		Addr:         addr,
		RecentBuffer: flagServeRecent,
		Logger:       appLogger,
	})

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  kwsp API listening on http://%s\n", addr)
		fmt.Fprintf(os.Stderr, "  POST /v1/calculate  GET /v1/status  GET /v1/calculations  GET /healthz\n")
	}
	return svc.Run(ctx)
}
