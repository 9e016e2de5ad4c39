package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eshaffer321/ezbookkeeping-go/internal/logging"
	"github.com/eshaffer321/ezbookkeeping-go/internal/mcpserver"
	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], &mcp.StdioTransport{})
	stop()

	if err != nil {
		log.Fatalf("mcp-server: %v", err)
	}
}

// run serves the MCP protocol on transport until ctx is done or the peer
// disconnects. Deferred cleanup, including the log flush, always runs
// before it returns.
func run(ctx context.Context, args []string, transport mcp.Transport) error {
	flags := flag.NewFlagSet("mcp-server", flag.ContinueOnError)
	envFile := flags.String("env", "", "path to a .env file (default: ./.env when present)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Load configuration from the environment and .env
	var envPaths []string
	if *envFile != "" {
		envPaths = append(envPaths, *envFile)
	}
	settings, err := ezbookkeeping.LoadSettings(envPaths...)
	if err != nil {
		return errors.Wrap(err, "failed to load settings")
	}

	logger, err := newLogger(settings)
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer func() { _ = logger.Sync() }()

	client, err := ezbookkeeping.NewClient(settings, &ezbookkeeping.ClientOptions{
		Logger: logger.Named("client"),
	})
	if err != nil {
		logger.Error("failed to initialize EzBookkeeping client", "error", err)
		return errors.Wrap(err, "failed to initialize EzBookkeeping client")
	}
	defer client.Close()

	server := mcpserver.New(client.Accounts, client.Transactions, &mcpserver.Options{
		Logger: logger.Named("mcp"),
	})

	logger.Info("starting MCP server", "url", settings.URL, "transport", "stdio")

	if err := server.Run(ctx, transport); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		return errors.Wrap(err, "server error")
	}
	return nil
}

func newLogger(settings *ezbookkeeping.Settings) (*logging.Logger, error) {
	config := logging.DefaultConfig()
	if settings.Debug {
		config = logging.DebugConfig()
	}
	return logging.New(config)
}
