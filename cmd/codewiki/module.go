package main

import (
	"github.com/codewiki-dev/codewiki/domain"
	"github.com/spf13/cobra"
)

// ModuleCommand reports on a single module
type ModuleCommand struct {
	output     outputFlags
	treePath   string
	graphPath  string
	configFile string
}

func NewModuleCommand() *ModuleCommand { return &ModuleCommand{} }

func NewModuleCmd() *cobra.Command {
	c := NewModuleCommand()

	cmd := &cobra.Command{
		Use:   "module <module-path> [paths...]",
		Short: "Report dependencies, cohesion and patterns for one module",
		Long: `Produce the full report for a single module: component list, internal and
external dependency edges grouped by foreign module, cohesion score,
detected patterns and per-component roles.

An unknown module path yields a not-found report, not an error.

Examples:
  codewiki module src/core .
  codewiki module src/core --json .`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}

	c.output.registerBasic(cmd)
	cmd.Flags().StringVar(&c.treePath, "tree", "", "Module tree artifact path")
	cmd.Flags().StringVar(&c.graphPath, "graph", "", "Dependency graph artifact path")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path (.codewiki.toml or YAML)")
	return cmd
}

func (c *ModuleCommand) run(cmd *cobra.Command, args []string) error {
	modulePath := args[0]
	paths, err := expandAndValidatePaths(args[1:])
	if err != nil {
		return err
	}

	format, err := c.output.resolve()
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(c.configFile, paths)
	if err != nil {
		return err
	}

	req := domain.AnalysisRequest{
		Paths:           paths,
		ModuleTreePath:  c.treePath,
		DependencyGraph: c.graphPath,
		OutputWriter:    cmd.OutOrStdout(),
		OutputFormat:    format,
		ConfigPath:      c.configFile,
		TreePatterns:    cfg.Analysis.TreePatterns,
		GraphPatterns:   cfg.Analysis.GraphPatterns,
	}

	useCase, err := createAnalysisUseCase(cmd, cfg)
	if err != nil {
		return err
	}

	if format != domain.OutputFormatText {
		req.OutputPath, err = generateOutputFilePath("module", c.output.extension(format), getTargetPathFromArgs(args[1:]))
		if err != nil {
			return err
		}
	}

	return useCase.ExecuteModule(commandContext(cmd), req, modulePath)
}
