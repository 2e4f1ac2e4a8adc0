package main

import (
	"github.com/codewiki-dev/codewiki/domain"
	"github.com/spf13/cobra"
)

// SummaryCommand prints the repository overview
type SummaryCommand struct {
	output     outputFlags
	treePath   string
	graphPath  string
	configFile string
}

func NewSummaryCommand() *SummaryCommand { return &SummaryCommand{} }

func NewSummaryCmd() *cobra.Command {
	c := NewSummaryCommand()

	cmd := &cobra.Command{
		Use:   "summary [paths...]",
		Short: "Show the repository-wide structure overview",
		Long: `Print the high-level overview of both artifacts: module counts by kind,
component count, tree depth and the number of processing levels.

Examples:
  codewiki summary .
  codewiki summary --json .`,
		Args: cobra.ArbitraryArgs,
		RunE: c.run,
	}

	c.output.registerBasic(cmd)
	cmd.Flags().StringVar(&c.treePath, "tree", "", "Module tree artifact path")
	cmd.Flags().StringVar(&c.graphPath, "graph", "", "Dependency graph artifact path")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path (.codewiki.toml or YAML)")
	return cmd
}

func (c *SummaryCommand) run(cmd *cobra.Command, args []string) error {
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

	return useCase.ExecuteSummary(commandContext(cmd), req)
}
