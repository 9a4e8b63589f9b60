package summarize_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/config"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/daterange"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/pipeline"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/redact"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/summarize"
)

// RegisterSummarizeTools registers the summarization tools with the MCP server.
func RegisterSummarizeTools(s *mcpserver.MCPServer) error {
	summarizeTool := mcp.NewTool("summarize_emails",
		mcp.WithDescription("Fetch emails from the given senders in a date range, redact PII, summarize them with the local LLM and return an HTML report with numbered citations"),
		mcp.WithString("senders",
			mcp.Required(),
			mcp.Description("Comma-separated sender email addresses to fetch from"),
		),
		mcp.WithString("dateRange",
			mcp.Required(),
			mcp.Description("Date range, e.g. 'last week', 'yesterday', '2025-03-01 to 2025-03-07'"),
		),
		mcp.WithBoolean("includeUncited",
			mcp.Description("Include fetched emails that the summary never cites in the appendix (default: true)"),
		),
	)
	s.AddTool(summarizeTool, handleSummarizeEmails)

	redactTool := mcp.NewTool("redact_text",
		mcp.WithDescription("Redact personally identifying information (emails, phone numbers, SSNs, credit cards, addresses and more) from text, replacing each match with a typed placeholder"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to redact"),
		),
		mcp.WithString("preserveEmail",
			mcp.Description("An email address to leave unredacted, e.g. the known sender"),
		),
	)
	s.AddTool(redactTool, handleRedactText)

	parseRangeTool := mcp.NewTool("parse_date_range",
		mcp.WithDescription("Parse a natural language date range like 'last week' or 'March 5 to March 12' into concrete start and end dates"),
		mcp.WithString("dateRange",
			mcp.Required(),
			mcp.Description("The date range expression to parse"),
		),
	)
	s.AddTool(parseRangeTool, handleParseDateRange)

	return nil
}

func handleSummarizeEmails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	sendersArg, ok := args["senders"].(string)
	if !ok || sendersArg == "" {
		return mcp.NewToolResultError("senders is required"), nil
	}
	senders := splitSenders(sendersArg)
	if len(senders) == 0 {
		return mcp.NewToolResultError("senders must contain at least one address"), nil
	}

	rangeArg, ok := args["dateRange"].(string)
	if !ok || rangeArg == "" {
		return mcp.NewToolResultError("dateRange is required"), nil
	}
	start, end, err := daterange.Parse(rangeArg, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date range: %v", err)), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("configuration error: %v", err)), nil
	}

	includeUncited := cfg.IncludeUncited
	if v, ok := args["includeUncited"].(bool); ok {
		includeUncited = v
	}

	if !gmail.HasToken() {
		return mcp.NewToolResultError("Gmail OAuth token not found. Run 'mailbrief auth' first to authorize access."), nil
	}
	client, err := gmail.NewClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create Gmail client: %v", err)), nil
	}

	llm, err := summarize.NewClient(cfg.LMStudioURL, cfg.LMStudioModel, cfg.Temperature)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create LLM client: %v", err)), nil
	}

	res, err := pipeline.Run(ctx, client, llm, pipeline.Options{
		Senders:        senders,
		Start:          start,
		End:            end,
		RangeLabel:     rangeArg,
		IncludeUncited: includeUncited,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
	}
	if len(res.Messages) == 0 {
		return mcp.NewToolResultText("No emails found matching the criteria."), nil
	}

	return mcp.NewToolResultText(res.HTML), nil
}

func handleRedactText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text is required"), nil
	}

	preserve := ""
	if v, ok := args["preserveEmail"].(string); ok {
		preserve = v
	}

	redactor, err := redact.NewDefault()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build redactor: %v", err)), nil
	}

	return mcp.NewToolResultText(redactor.Redact(text, preserve)), nil
}

func handleParseDateRange(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rangeArg, ok := args["dateRange"].(string)
	if !ok || rangeArg == "" {
		return mcp.NewToolResultError("dateRange is required"), nil
	}

	start, end, err := daterange.Parse(rangeArg, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date range: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("start: %s\nend: %s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))), nil
}

func splitSenders(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
