package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/config"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/daterange"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/instrumentation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/logging"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/pipeline"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/summarize"
)

func newSummarizeCmd() *cobra.Command {
	var (
		rangeText      string
		senders        []string
		recipients     []string
		outputFile     string
		subject        string
		model          string
		lmStudioURL    string
		temperature    float64
		includeUncited bool
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Fetch, redact and summarize emails into a cited HTML digest",
		Long: `Fetch emails from the given senders within a date range, redact PII
from their bodies, summarize each one with the local LLM, and assemble an
HTML digest where every summary cites the original email in the appendix.

The digest can be written to a file with --output, sent by email with --to,
or both. At least one of the two is required.

Examples:
  mailbrief summarize --range "last 7 days" --senders boss@company.com --output summary.html
  mailbrief summarize --range "from Monday to Friday" --senders alice@example.com,bob@example.com --to me@example.com
  mailbrief summarize --range "the past month" --senders newsletter@service.com --to team@company.com --subject "Monthly Newsletter Summary"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(recipients) == 0 && outputFile == "" {
				return fmt.Errorf("either --to (send email) or --output (save to file) is required")
			}
			if len(senders) == 0 {
				return fmt.Errorf("at least one sender is required, use --senders")
			}

			logging.Setup(logLevel)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.LMStudioModel = model
			}
			if lmStudioURL != "" {
				cfg.LMStudioURL = lmStudioURL
			}
			if cmd.Flags().Changed("temperature") {
				cfg.Temperature = temperature
			}
			if cmd.Flags().Changed("include-uncited") {
				cfg.IncludeUncited = includeUncited
			}

			return runSummarize(cmd.Context(), cfg, rangeText, senders, recipients, outputFile, subject)
		},
	}

	cmd.Flags().StringVarP(&rangeText, "range", "r", "last week", `Natural language date range (e.g. "last 7 days", "from Monday to Friday")`)
	cmd.Flags().StringSliceVarP(&senders, "senders", "s", nil, "Sender email addresses to include (comma-separated or repeated)")
	cmd.Flags().StringSliceVarP(&recipients, "to", "t", nil, "Recipient email addresses for the digest (comma-separated or repeated)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path for the HTML digest")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject line (default: generated from sender names and date range)")
	cmd.Flags().StringVar(&model, "model", "", "LLM model name (default: LM_STUDIO_MODEL env var)")
	cmd.Flags().StringVar(&lmStudioURL, "lm-url", "", "LM Studio API URL (default: LM_STUDIO_URL env var or http://localhost:1234/v1)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.2, "LLM sampling temperature")
	cmd.Flags().BoolVar(&includeUncited, "include-uncited", true, "Include emails the summary never cites in the appendix")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	return cmd
}

func runSummarize(ctx context.Context, cfg *config.Cfg, rangeText string, senders, recipients []string, outputFile, subject string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	start, end, err := daterange.Parse(rangeText, time.Now())
	if err != nil {
		return fmt.Errorf("invalid date range %q: %w", rangeText, err)
	}
	fmt.Printf("Date range: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		_ = provider.Shutdown(ctx)
	}()

	fmt.Println("Authenticating with Gmail...")
	if !gmail.HasToken() {
		return fmt.Errorf("no Gmail token found, run 'mailbrief auth' first")
	}
	client, err := gmail.NewClient(ctx)
	if err != nil {
		return err
	}

	llm, err := summarize.NewClient(cfg.LMStudioURL, cfg.LMStudioModel, cfg.Temperature)
	if err != nil {
		return err
	}

	fmt.Printf("Fetching emails from %d sender(s)...\n", len(senders))
	res, err := pipeline.Run(ctx, client, llm, pipeline.Options{
		Senders:        senders,
		Start:          start,
		End:            end,
		RangeLabel:     rangeText,
		IncludeUncited: cfg.IncludeUncited,
		Metrics:        provider.Metrics(),
		Progress: func(current, total int) {
			fmt.Printf("  Summarizing email %d/%d...\r", current, total)
		},
	})
	if err != nil {
		return err
	}
	if len(res.Messages) == 0 {
		fmt.Println("No emails found matching the criteria.")
		return nil
	}
	fmt.Printf("Summarized %d email(s)        \n", len(res.Messages))

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(res.HTML), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Summary saved to: %s\n", outputFile)
	}

	if len(recipients) > 0 {
		if subject == "" {
			subject = generateSubject(res.Messages, rangeText)
		}
		fmt.Printf("Sending email to %d recipient(s)...\n", len(recipients))
		fmt.Printf("Subject: %s\n", subject)
		if _, err := client.SendSummary(recipients, subject, res.HTML); err != nil {
			return err
		}
		fmt.Println("Email sent successfully!")
	}

	return nil
}

// generateSubject builds a subject line from the distinct sender display
// names, in fetch order, and the date range text.
func generateSubject(msgs []*gmail.Message, rangeText string) string {
	var names []string
	seen := make(map[string]bool)
	for _, msg := range msgs {
		name := msg.DisplayName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var sendersStr string
	switch {
	case len(names) == 1:
		sendersStr = names[0]
	case len(names) == 2:
		sendersStr = names[0] + " and " + names[1]
	case len(names) <= 4:
		sendersStr = strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	default:
		sendersStr = strings.Join(names[:3], ", ") + fmt.Sprintf(", and %d others", len(names)-3)
	}

	return fmt.Sprintf("Summary of %s for %s", sendersStr, rangeText)
}
