package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailbrief application
var rootCmd = &cobra.Command{
	Use:   "mailbrief",
	Short: "Summarizes emails from frequent senders into a cited digest",
	Long: `mailbrief fetches emails from selected senders over a date range,
redacts personally identifying information, summarizes each email with a
local LLM via LM Studio, and produces an HTML digest in which every claim
carries a numbered citation pointing at the original email in the appendix.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailbrief version %s\n" .Version}}`)

	// If no subcommand is provided, run the summarize command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "summarize")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
