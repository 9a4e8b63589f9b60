package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultLMStudioURL is the local LM Studio endpoint used when no URL is
// configured.
const DefaultLMStudioURL = "http://localhost:1234/v1"

// Cfg holds runtime configuration loaded from environment variables.
type Cfg struct {
	// LMStudioURL is the base URL of the OpenAI-compatible endpoint the
	// summarizer talks to (LM_STUDIO_URL).
	LMStudioURL string

	// LMStudioModel is the model name to request (LM_STUDIO_MODEL).
	// Required by the summarize command; validated there, not here, so
	// auth and serve can run without it.
	LMStudioModel string

	// Temperature for summarization requests (SUMMARIZER_TEMPERATURE,
	// default 0.2).
	Temperature float64

	// IncludeUncited controls whether messages never cited by the
	// narrative still appear, unnumbered, in the appendix
	// (APPENDIX_INCLUDE_UNCITED, default true).
	IncludeUncited bool
}

// Load reads .env (if present) then environment variables and returns Cfg.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	url := strings.TrimSpace(os.Getenv("LM_STUDIO_URL"))
	if url == "" {
		url = DefaultLMStudioURL
	}
	url = strings.TrimRight(url, "/")

	temperature := 0.2
	if raw := strings.TrimSpace(os.Getenv("SUMMARIZER_TEMPERATURE")); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SUMMARIZER_TEMPERATURE %q: %w", raw, err)
		}
		if t < 0 || t > 2 {
			return nil, fmt.Errorf("config: SUMMARIZER_TEMPERATURE %v out of range [0,2]", t)
		}
		temperature = t
	}

	includeUncited := true
	if raw := strings.TrimSpace(os.Getenv("APPENDIX_INCLUDE_UNCITED")); raw != "" {
		includeUncited = raw == "1" || strings.EqualFold(raw, "true")
	}

	return &Cfg{
		LMStudioURL:    url,
		LMStudioModel:  strings.TrimSpace(os.Getenv("LM_STUDIO_MODEL")),
		Temperature:    temperature,
		IncludeUncited: includeUncited,
	}, nil
}
