package main

import (
	"github.com/codewiki-dev/codewiki/domain"
	"github.com/spf13/cobra"
)

// ComponentCommand reports on a single component
type ComponentCommand struct {
	output     outputFlags
	treePath   string
	graphPath  string
	configFile string
}

func NewComponentCommand() *ComponentCommand { return &ComponentCommand{} }

func NewComponentCmd() *cobra.Command {
	c := NewComponentCommand()

	cmd := &cobra.Command{
		Use:   "component <component-id> [paths...]",
		Short: "Report dependencies and inferred role for one component",
		Long: `Produce the report for a single component: its dependencies and
dependents partitioned into same-module and cross-module groups, plus a
heuristic role assignment with confidence and reasoning.

An unknown component id yields a not-found report, not an error.

Examples:
  codewiki component myapp.services.UserManager .
  codewiki component myapp.services.UserManager --json .`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}

	c.output.registerBasic(cmd)
	cmd.Flags().StringVar(&c.treePath, "tree", "", "Module tree artifact path")
	cmd.Flags().StringVar(&c.graphPath, "graph", "", "Dependency graph artifact path")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path (.codewiki.toml or YAML)")
	return cmd
}

func (c *ComponentCommand) run(cmd *cobra.Command, args []string) error {
	componentID := args[0]
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
		req.OutputPath, err = generateOutputFilePath("component", c.output.extension(format), getTargetPathFromArgs(args[1:]))
		if err != nil {
			return err
		}
	}

	return useCase.ExecuteComponent(commandContext(cmd), req, componentID)
}
