package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes are the Google OAuth scopes the summarizer needs: read mail to
// fetch messages, send mail to deliver the finished summary. Nothing else.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
}

const tokenFileName = "google.token"

// HasToken checks if a cached OAuth token exists.
func HasToken() bool {
	_, err := os.ReadFile(tokenFile())
	return err == nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() (string, error) {
	conf, err := oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveToken exchanges an authorization code for tokens and caches them.
func SaveToken(ctx context.Context, authCode string) error {
	conf, err := oauthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	file := tokenFile()
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(file, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// oauthConfig builds the OAuth2 configuration from the environment.
// Client credentials come from GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET
// (a Desktop-application OAuth client from the Google Cloud console).
func oauthConfig() (*oauth2.Config, error) {
	clientID := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
	clientSecret := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set; create a Desktop OAuth client at https://console.cloud.google.com/apis/credentials")
	}

	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes:       Scopes,
	}, nil
}

// GetTokenSource returns an OAuth2 token source for the cached token.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := oauthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(tokenFile())
	if err != nil {
		return nil, fmt.Errorf("no cached Google OAuth token found; run 'mailbrief auth' first")
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format in %s", tokenFile())
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Validate the token
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token is invalid: %w", err)
	}

	return ts, nil
}

// GetHTTPClient returns an HTTP client configured with OAuth2
// authentication. The client is configured to use HTTP/1.1 to avoid
// HTTP/2 protocol errors against the Gmail endpoints.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := GetTokenSource(ctx)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

func tokenFile() string {
	return filepath.Join(userCacheDir(), "mailbrief", tokenFileName)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
