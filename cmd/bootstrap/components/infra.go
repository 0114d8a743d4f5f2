package components

import (
	"log/slog"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/infra/catalog"
	"stamp-rally/internal/infra/gateway"
	"stamp-rally/internal/infra/ledger"
	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/metrics"
	"stamp-rally/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	upstreamModule,
	gatewayModule,
	fx.Provide(
		NewCatalog,
		fx.Annotate(
			ledger.NewFactory,
			fx.As(new(shared.LedgerFactory)),
		),
	),
)

var upstreamModule = fx.Module("infra/upstream",
	fx.Provide(
		NewUpstreamClient,
		NewChatbot,
	),
)

var gatewayModule = fx.Module("infra/gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewAuth,
			fx.As(new(shared.AuthGateway)),
		),
		fx.Annotate(
			gateway.NewImages,
			fx.As(new(shared.ImageGateway)),
		),
		fx.Annotate(
			gateway.NewChat,
			fx.As(new(shared.ChatGateway)),
		),
	),
)

func NewUpstreamClient(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (*upstream.Client, error) {
	return upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, m, logger)
}

// NewChatbot talks to CHATBOT_BASE_URL, or to the main API when it is unset.
func NewChatbot(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (*upstream.Chatbot, error) {
	baseURL := cfg.Upstream.ChatbotBaseURL
	if baseURL == "" {
		baseURL = cfg.Upstream.BaseURL
	}
	client, err := upstream.NewClient(baseURL, cfg.Upstream.Timeout, m, logger)
	if err != nil {
		return nil, err
	}
	return upstream.NewChatbot(client), nil
}

func NewCatalog(cfg config.Config, logger *slog.Logger) (*reward.Catalog, error) {
	c, err := catalog.Load(cfg.App.CatalogFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Reward catalog loaded", slog.Int("rewards", c.Len()), slog.String("file", cfg.App.CatalogFile))
	return c, nil
}
