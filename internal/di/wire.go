//go:build wireinject
// +build wireinject

package di

import (
	"PredictPulse/pkg/config"
	"PredictPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Catalog
		ProvideCatalogSource,
		ProvideCatalogHolder,

		// External collaborators
		ProvideSemanticSearcher,
		ProvideAssistant,
		ProvidePreferenceStore,
		ProvideInteractionPublisher,
		ProvideRankingLog,

		// Use cases
		ProvideMatcher,
		ProvideRanker,
		ProvideBrowser,
		ProvideChat,
		ProvidePrefs,

		// Transport
		ProvideHub,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
