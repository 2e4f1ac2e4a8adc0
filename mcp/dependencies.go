package mcp

import (
	"github.com/codewiki-dev/codewiki/internal/config"
	"github.com/codewiki-dev/codewiki/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildAnalysisService assembles a fresh analysis service. Progress output is
// suppressed because stdout carries the JSON-RPC stream.
func (d *Dependencies) BuildAnalysisService() *service.AnalysisServiceImpl {
	s := service.NewAnalysisServiceWithConfig(d.config)
	s.SetProgressManager(service.NewNoopProgressManager())
	return s
}
