package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LM_STUDIO_URL", "")
	t.Setenv("LM_STUDIO_MODEL", "")
	t.Setenv("SUMMARIZER_TEMPERATURE", "")
	t.Setenv("APPENDIX_INCLUDE_UNCITED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultLMStudioURL, cfg.LMStudioURL)
	assert.Empty(t, cfg.LMStudioModel)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.True(t, cfg.IncludeUncited)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LM_STUDIO_URL", "http://lmstudio.local:1234/v1/")
	t.Setenv("LM_STUDIO_MODEL", "qwen2.5-7b-instruct")
	t.Setenv("SUMMARIZER_TEMPERATURE", "0.7")
	t.Setenv("APPENDIX_INCLUDE_UNCITED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://lmstudio.local:1234/v1", cfg.LMStudioURL, "trailing slash is stripped")
	assert.Equal(t, "qwen2.5-7b-instruct", cfg.LMStudioModel)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.False(t, cfg.IncludeUncited)
}

func TestLoadInvalidTemperature(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "warm"},
		{"negative", "-0.1"},
		{"too high", "3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUMMARIZER_TEMPERATURE", tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
