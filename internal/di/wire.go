//go:build wireinject
// +build wireinject

package di

import (
	"BrentWatch/pkg/config"
	"BrentWatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Collaborator data sources
		ProvideSeriesSource,
		ProvideEventCatalogSource,

		// Analysis pipeline
		ProvideRunner,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
