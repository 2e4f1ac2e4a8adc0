package main

import (
	"github.com/codewiki-dev/codewiki/domain"
	"github.com/spf13/cobra"
)

// AnalyzeCommand represents the full repository analysis command
type AnalyzeCommand struct {
	output     outputFlags
	treePath   string
	graphPath  string
	modules    []string
	configFile string
}

func NewAnalyzeCommand() *AnalyzeCommand { return &AnalyzeCommand{} }

func NewAnalyzeCmd() *cobra.Command {
	c := NewAnalyzeCommand()

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze module structure, dependencies, cohesion and patterns",
		Long: `Run the full structural analysis: module hierarchy, dependency direction,
cohesion scores, component roles, architectural patterns and the bottom-up
processing order.

The input artifacts (module_tree.json and dependency_graph.json) are
discovered under the given paths, or supplied explicitly with --tree and
--graph.

Examples:
  codewiki analyze .
  codewiki analyze --tree artifacts/module_tree.json --graph artifacts/dependency_graph.json
  codewiki analyze --module src/core --module src/api .
  codewiki analyze --json .
  codewiki analyze --dot . > graph.dot`,
		Args: cobra.ArbitraryArgs,
		RunE: c.run,
	}

	c.output.register(cmd, true)
	cmd.Flags().StringVar(&c.treePath, "tree", "", "Module tree artifact path")
	cmd.Flags().StringVar(&c.graphPath, "graph", "", "Dependency graph artifact path")
	cmd.Flags().StringArrayVarP(&c.modules, "module", "m", nil, "Restrict reports to these module paths (repeatable)")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path (.codewiki.toml or YAML)")
	return cmd
}

func (c *AnalyzeCommand) run(cmd *cobra.Command, args []string) error {
	paths, err := expandAndValidatePaths(args)
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
		Modules:         c.modules,
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

	// Non-text formats go to a timestamped report file
	if format != domain.OutputFormatText {
		req.OutputPath, err = generateOutputFilePath("analyze", c.output.extension(format), getTargetPathFromArgs(args))
		if err != nil {
			return err
		}
	}

	return useCase.Execute(commandContext(cmd), req)
}
