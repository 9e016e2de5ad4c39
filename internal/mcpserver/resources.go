package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// AccountsURI lists every account
	AccountsURI = "ezbookkeeping://accounts"

	// AccountURITemplate addresses a single account, including sub-accounts
	AccountURITemplate = "ezbookkeeping://accounts/{account_id}"

	jsonMIMEType = "application/json"
)

// accountResources serves the account tree as read-only resources
type accountResources struct {
	accounts ezbookkeeping.AccountService
	logger   types.Logger
}

func registerResources(server *mcp.Server, resources *accountResources) {
	server.AddResource(&mcp.Resource{
		URI:         AccountsURI,
		Name:        "accounts",
		Description: "All accounts with balances in cents and dollars, including nested sub-accounts.",
		MIMEType:    jsonMIMEType,
	}, resources.ListAccounts)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: AccountURITemplate,
		Name:        "account",
		Description: "A single account by ID. Sub-accounts are searched too.",
		MIMEType:    jsonMIMEType,
	}, resources.GetAccount)
}

func (r *accountResources) ListAccounts(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	r.logger.Debug("resource read", "uri", req.Params.URI)

	list, err := r.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	return jsonResource(req.Params.URI, list)
}

func (r *accountResources) GetAccount(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	r.logger.Debug("resource read", "uri", req.Params.URI)

	accountID, err := accountIDFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	detail, err := r.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	return jsonResource(req.Params.URI, detail)
}

// accountIDFromURI extracts the {account_id} segment of an account URI
func accountIDFromURI(uri string) (string, error) {
	prefix := AccountsURI + "/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("unexpected account URI: %s", uri)
	}

	accountID, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return "", fmt.Errorf("invalid account URI %s: %w", uri, err)
	}
	if accountID == "" {
		return "", fmt.Errorf("missing account id in URI: %s", uri)
	}
	return accountID, nil
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: jsonMIMEType,
				Text:     string(data),
			},
		},
	}, nil
}
