package main

import (
	"context"
	"fmt"

	"github.com/codewiki-dev/codewiki/app"
	"github.com/codewiki-dev/codewiki/domain"
	"github.com/codewiki-dev/codewiki/internal/config"
	"github.com/codewiki-dev/codewiki/service"
	"github.com/spf13/cobra"
)

// outputFlags is the shared format flag set of the analysis commands
type outputFlags struct {
	json bool
	yaml bool
	csv  bool
	dot  bool
}

func (o *outputFlags) register(cmd *cobra.Command, withDOT bool) {
	o.registerBasic(cmd)
	cmd.Flags().BoolVar(&o.csv, "csv", false, "Generate CSV report file")
	if withDOT {
		cmd.Flags().BoolVar(&o.dot, "dot", false, "Generate DOT graph file")
	}
}

// registerBasic registers only the formats every report kind supports
func (o *outputFlags) registerBasic(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&o.yaml, "yaml", false, "Generate YAML report file")
}

// resolve returns the selected format, or text when no flag is set.
// More than one format flag is an error.
func (o *outputFlags) resolve() (domain.OutputFormat, error) {
	count := 0
	format := domain.OutputFormatText
	if o.json {
		count++
		format = domain.OutputFormatJSON
	}
	if o.yaml {
		count++
		format = domain.OutputFormatYAML
	}
	if o.csv {
		count++
		format = domain.OutputFormatCSV
	}
	if o.dot {
		count++
		format = domain.OutputFormatDOT
	}
	if count > 1 {
		return "", fmt.Errorf("only one of --json, --yaml, --csv, --dot can be specified")
	}
	return format, nil
}

func (o *outputFlags) extension(format domain.OutputFormat) string {
	return string(format)
}

// loadProjectConfig loads configuration for the analyzed target
func loadProjectConfig(configFile string, paths []string) (*config.Config, error) {
	var target string
	if len(paths) > 0 {
		target = paths[0]
	}
	cfg, err := config.LoadConfigWithTarget(configFile, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// createAnalysisUseCase wires the service, formatter and report writer
func createAnalysisUseCase(cmd *cobra.Command, cfg *config.Config) (*app.AnalysisUseCase, error) {
	analysisSvc := service.NewAnalysisServiceWithConfig(cfg)
	return app.NewAnalysisUseCaseBuilder().
		WithService(analysisSvc).
		WithFormatter(service.NewAnalysisFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

// commandContext returns the cobra context, or a fresh background context
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
