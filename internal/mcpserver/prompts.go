package mcpserver

import (
	"context"
	"fmt"

	"github.com/eshaffer321/ezbookkeeping-go/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultPeriod = "month"
	allCategories = "all"
)

func registerPrompts(server *mcp.Server, logger types.Logger) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "analyze_spending",
		Description: "Analyze spending patterns for a time period.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "period",
				Description: "Time period to analyze: week, month, quarter or year (default: month)",
			},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		period := argument(req, "period", defaultPeriod)
		logger.Debug("prompt", "name", "analyze_spending", "period", period)
		return userPrompt("Spending analysis", AnalyzeSpendingPrompt(period)), nil
	})

	server.AddPrompt(&mcp.Prompt{
		Name:        "budget_review",
		Description: "Review the budget for one category or for all categories.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "category",
				Description: `Category to review, or "all" for every category (default: all)`,
			},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := argument(req, "category", allCategories)
		logger.Debug("prompt", "name", "budget_review", "category", category)
		return userPrompt("Budget review", BudgetReviewPrompt(category)), nil
	})
}

// AnalyzeSpendingPrompt returns the spending analysis request for period
func AnalyzeSpendingPrompt(period string) string {
	return fmt.Sprintf(`Please analyze my spending for the %[1]s and provide:

1. Total spending by category
2. Top 5 expenses
3. Spending trends compared to previous %[1]s
4. Unusual or noteworthy transactions
5. Budget recommendations

Please be specific with amounts and percentages.`, period)
}

// BudgetReviewPrompt returns the budget review request for category.
// "all" asks for an overall review.
func BudgetReviewPrompt(category string) string {
	if category == allCategories {
		return `Please review my overall budget and provide:

1. Budget vs actual spending by category
2. Categories where I'm over/under budget
3. Recommendations for adjusting budgets
4. Tips for staying within budget`
	}

	return fmt.Sprintf(`Please review my budget for the %s category and provide:

1. Budget vs actual spending
2. Whether I'm on track for this category
3. Specific recommendations for this category
4. Comparison with similar periods`, category)
}

func argument(req *mcp.GetPromptRequest, name, defaultValue string) string {
	if req == nil || req.Params == nil {
		return defaultValue
	}
	if v, ok := req.Params.Arguments[name]; ok && v != "" {
		return v
	}
	return defaultValue
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
