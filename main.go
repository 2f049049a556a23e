package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tickctx/pkg/auth"
	"github.com/harrisonrobin/tickctx/pkg/config"
	"github.com/harrisonrobin/tickctx/pkg/enrich"
	"github.com/harrisonrobin/tickctx/pkg/mcpserver"
	"github.com/harrisonrobin/tickctx/pkg/ticktick"
	"github.com/harrisonrobin/tickctx/pkg/tools"
)

var configPath string

func main() {
	// stdout belongs to the MCP stream and to command output.
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:           "tickctx",
		Short:         "TickTick tasks with time context, for people and AI agents",
		Version:       mcpserver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tickctx/config.yaml)")

	rootCmd.AddCommand(
		serveCmd(),
		todayCmd(),
		overdueCmd(),
		floatingCmd(),
		upcomingCmd(),
		projectCmd(),
		searchCmd(),
		summaryCmd(),
		nextCmd(),
		addCmd(),
		rescheduleCmd(),
		doneCmd(),
		rmCmd(),
		configCmd(),
		loginCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newTools wires config, auth, the TickTick client and the enricher.
func newTools(ctx context.Context) (*tools.Tools, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	tok, err := auth.ResolveToken(cfg.Token)
	if err != nil {
		return nil, err
	}

	httpClient := auth.NewClient(ctx, tok, cfg.HTTPTimeout)
	client := ticktick.NewClient(httpClient, cfg.BaseURL, cfg.FetchConcurrency)
	return tools.New(client, enrich.NewEnricher(loc, time.Now)), nil
}
