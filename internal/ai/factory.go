package ai

import (
	"fmt"
	"strings"

	"github.com/vitamed/backend/internal/config"
)

// NewProviderFromConfig selects the completion backend from AI_PROVIDER.
func NewProviderFromConfig(cfg config.Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.AIProvider)) {
	case "", "ollama":
		return NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.AITimeout), nil
	case "openrouter":
		return NewOpenRouterProvider(
			cfg.OpenRouterBaseURL,
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel,
			cfg.OpenRouterSiteURL,
			cfg.OpenRouterAppName,
			cfg.AITimeout,
		), nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER=%q", cfg.AIProvider)
	}
}
