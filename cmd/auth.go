package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/google"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access and cache the OAuth token",
		Long: `Run the Google OAuth flow for Gmail read and send access. The
resulting token is cached on disk, so this only needs to run once (and
again whenever the token is revoked).

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment or
in a .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasToken() && !force {
				fmt.Println("A Gmail token is already cached. Use --force to re-authorize.")
				return nil
			}

			authURL, err := google.GetAuthURL()
			if err != nil {
				return err
			}

			fmt.Println("Visit this URL in your browser and authorize access:")
			fmt.Println()
			fmt.Printf("  %s\n", authURL)
			fmt.Println()
			fmt.Print("Paste the authorization code here: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveToken(cmd.Context(), code); err != nil {
				return err
			}

			fmt.Println("Token saved. You can now run 'mailbrief summarize'.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-authorize even if a token is already cached")
	return cmd
}
