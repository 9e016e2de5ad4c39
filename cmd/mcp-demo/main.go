// Command mcp-demo serves the EzBookkeeping MCP tools and resources from an
// in-memory ledger. Nothing is sent to a real server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eshaffer321/ezbookkeeping-go/internal/demo"
	"github.com/eshaffer321/ezbookkeeping-go/internal/logging"
	"github.com/eshaffer321/ezbookkeeping-go/internal/mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	currency := flag.String("currency", "USD", "currency used in confirmation messages")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	config := logging.DefaultConfig()
	if *debug {
		config = logging.DebugConfig()
	}
	logger, err := logging.New(config)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store := demo.NewStore(demo.WithCurrency(*currency))

	server := mcpserver.New(store.Accounts(), store.Transactions(), &mcpserver.Options{
		Name:   "EzBookkeeping Demo",
		Logger: logger.Named("mcp"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting demo MCP server", "transport", "stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
	}
}
