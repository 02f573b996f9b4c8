package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beeper/attio-mcp/pkg/attio"
	"github.com/beeper/attio-mcp/pkg/server"
	"github.com/beeper/attio-mcp/pkg/tools"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional, env vars fill the rest)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := cfg.Logging.Compile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid logging config:", err)
		os.Exit(1)
	}
	if cfg.Attio.APIKey == "" {
		log.Warn().Msg("No Attio API key configured, every tool call will need an api_key argument")
	}

	deps := &tools.Deps{
		Client: attio.NewClient(cfg.Attio, *log),
		Log:    *log,
	}
	srv := server.New(tools.DefaultRegistry(deps), *log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("MCP server exited")
	}
}
