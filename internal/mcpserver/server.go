// Package mcpserver exposes an EzBookkeeping ledger to AI agents over the
// Model Context Protocol: transaction tools, account resources and
// analysis prompts.
package mcpserver

import (
	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// DefaultName is the implementation name reported to MCP clients
	DefaultName = "EzBookkeeping"

	// DefaultVersion is the implementation version reported to MCP clients
	DefaultVersion = "1.0.0"
)

// Options configures the MCP server
type Options struct {
	Name    string
	Version string

	// Logger receives one debug line per tool call, resource read and prompt
	Logger types.Logger
}

// New builds an MCP server backed by the given services. Nothing is
// contacted until a client calls a tool or reads a resource.
func New(accounts ezbookkeeping.AccountService, transactions ezbookkeeping.TransactionService, opts *Options) *mcp.Server {
	if opts == nil {
		opts = &Options{}
	}

	impl := &mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}
	if impl.Name == "" {
		impl.Name = DefaultName
	}
	if impl.Version == "" {
		impl.Version = DefaultVersion
	}

	server := mcp.NewServer(impl, nil)

	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	registerTools(server, &ledgerTools{transactions: transactions, logger: logger})
	registerResources(server, &accountResources{accounts: accounts, logger: logger})
	registerPrompts(server, logger)

	return server
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
