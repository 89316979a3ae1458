// cmd/fx/prompt_fx/init.go
package prompt_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

var Module = fx.Provide(
	ProvideGuideClient,
	ProvideGuideService,
)

// GuideConfig holds the settings of the configured AI provider
type GuideConfig struct {
	Provider string
	APIKey   string
	Model    string
}

func getGuideConfig(cfg *config.Config) GuideConfig {
	gc := GuideConfig{Provider: cfg.AIProvider}
	switch cfg.AIProvider {
	case "openai":
		gc.APIKey, gc.Model = cfg.OpenAIAPIKey, cfg.OpenAIModel
	case "gemini":
		gc.APIKey, gc.Model = cfg.GeminiAPIKey, cfg.GeminiModel
	}
	return gc
}

// ProvideGuideClient may return a nil client: without a key the guide answers from its rules.
func ProvideGuideClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.GuideClientInterface, error) {
	gc := getGuideConfig(cfg)

	client, err := utils.NewGuideClient(gc.Provider, gc.APIKey, gc.Model)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("no AI provider configured, guide uses built-in answers", zap.String("provider", gc.Provider))
		return nil, nil
	}

	logger.Info("initializing guide client", zap.String("provider", gc.Provider), zap.String("model", gc.Model))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func ProvideGuideService(client utils.GuideClientInterface, logger *zap.Logger) services.GuideServiceInterface {
	return services.NewGuideService(client, logger.Named("guide"))
}
