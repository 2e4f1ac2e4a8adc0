package service

import (
	"context"
	"os"
	"time"

	"github.com/codewiki-dev/codewiki/domain"
	"github.com/codewiki-dev/codewiki/internal/analyzer"
	"github.com/codewiki-dev/codewiki/internal/config"
	"github.com/codewiki-dev/codewiki/internal/version"
)

// AnalysisServiceImpl implements the AnalysisService interface. Each call
// loads the two artifacts, builds the engine and answers from the indexes;
// nothing is cached across calls.
type AnalysisServiceImpl struct {
	cfg      *config.Config
	locator  domain.ArtifactLocator
	progress domain.ProgressManager
}

// NewAnalysisService creates the service with the default configuration
func NewAnalysisService() *AnalysisServiceImpl {
	return NewAnalysisServiceWithConfig(config.DefaultConfig())
}

// NewAnalysisServiceWithConfig creates the service with explicit configuration
func NewAnalysisServiceWithConfig(cfg *config.Config) *AnalysisServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &AnalysisServiceImpl{
		cfg:      cfg,
		locator:  NewArtifactLocator(),
		progress: NewProgressManager(),
	}
}

// SetProgressManager overrides the progress reporter (used by tests and MCP)
func (s *AnalysisServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	if pm != nil {
		s.progress = pm
	}
}

// Analyze implements domain.AnalysisService
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	engine, err := s.loadEngine(req)
	if err != nil {
		return nil, err
	}

	response := &domain.AnalysisResponse{
		Summary:         engine.RepositorySummary(),
		ProcessingOrder: engine.ProcessingOrder(),
		Modules:         make(map[string]*domain.ModuleReport),
		Warnings:        engine.Warnings(),
		GeneratedAt:     domain.Timestamp(time.Now()),
		Version:         version.Short(),
	}

	selected := s.selectModules(engine, req.Modules, response)

	s.progress.Initialize(len(selected))
	s.progress.Start()
	processed := 0
	for _, modulePath := range selected {
		if err := ctx.Err(); err != nil {
			s.progress.Complete(false)
			return nil, domain.NewAnalysisError("analysis cancelled", err)
		}
		report := engine.ModuleReport(modulePath)
		response.Modules[modulePath] = &report
		processed++
		s.progress.Update(processed, len(selected))
	}
	s.progress.Complete(true)

	if req.OutputFormat == domain.OutputFormatDOT {
		response.DOT = engine.ComponentGraphDOT()
	}
	response.HierarchyMermaid = engine.ModuleHierarchyMermaid()

	return response, nil
}

// AnalyzeModule implements domain.AnalysisService
func (s *AnalysisServiceImpl) AnalyzeModule(ctx context.Context, req domain.AnalysisRequest, modulePath string) (*domain.ModuleReport, error) {
	engine, err := s.loadEngine(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("analysis cancelled", err)
	}
	report := engine.ModuleReport(modulePath)
	return &report, nil
}

// AnalyzeComponent implements domain.AnalysisService
func (s *AnalysisServiceImpl) AnalyzeComponent(ctx context.Context, req domain.AnalysisRequest, componentID string) (*domain.ComponentReport, error) {
	engine, err := s.loadEngine(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("analysis cancelled", err)
	}
	report := engine.ComponentReport(componentID)
	return &report, nil
}

// Summarize implements domain.AnalysisService
func (s *AnalysisServiceImpl) Summarize(ctx context.Context, req domain.AnalysisRequest) (*domain.RepositorySummary, error) {
	engine, err := s.loadEngine(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("analysis cancelled", err)
	}
	summary := engine.RepositorySummary()
	return &summary, nil
}

// selectModules resolves the module scope of a request. Unknown requested
// modules are kept in the result set so their reports surface Found=false,
// and recorded in the response error list.
func (s *AnalysisServiceImpl) selectModules(engine *analyzer.Engine, requested []string, response *domain.AnalysisResponse) []string {
	if len(requested) == 0 {
		var all []string
		for _, batch := range engine.ProcessingOrder() {
			all = append(all, batch...)
		}
		return all
	}

	for _, modulePath := range requested {
		if engine.Tree().Module(modulePath) == nil {
			response.Errors = append(response.Errors, "module "+modulePath+" not found")
		}
	}
	return requested
}

// loadEngine resolves the artifact paths, decodes both files and assembles
// the engine with the configured thresholds.
func (s *AnalysisServiceImpl) loadEngine(req domain.AnalysisRequest) (*analyzer.Engine, error) {
	treePath, graphPath, err := s.resolveArtifacts(req)
	if err != nil {
		return nil, err
	}

	tree, err := decodeTreeFile(treePath)
	if err != nil {
		return nil, err
	}
	graph, err := decodeGraphFile(graphPath)
	if err != nil {
		return nil, err
	}

	return analyzer.NewEngine(analyzer.NewGraphStore(tree, graph), s.engineOptions()), nil
}

func (s *AnalysisServiceImpl) resolveArtifacts(req domain.AnalysisRequest) (string, string, error) {
	if req.ModuleTreePath != "" && req.DependencyGraph != "" {
		return req.ModuleTreePath, req.DependencyGraph, nil
	}

	treePatterns := req.TreePatterns
	if len(treePatterns) == 0 {
		treePatterns = s.cfg.Analysis.TreePatterns
	}
	graphPatterns := req.GraphPatterns
	if len(graphPatterns) == 0 {
		graphPatterns = s.cfg.Analysis.GraphPatterns
	}

	treePath, graphPath, err := s.locator.Locate(req.Paths, treePatterns, graphPatterns)
	if err != nil {
		return "", "", err
	}
	if req.ModuleTreePath != "" {
		treePath = req.ModuleTreePath
	}
	if req.DependencyGraph != "" {
		graphPath = req.DependencyGraph
	}
	return treePath, graphPath, nil
}

func (s *AnalysisServiceImpl) engineOptions() *analyzer.EngineOptions {
	a := s.cfg.Analysis
	return &analyzer.EngineOptions{
		Patterns: &analyzer.PatternDetectorOptions{
			LayeredMinRoles:       a.LayeredMinRoles,
			LayeredMinRoleMembers: a.LayeredMinRoleMembers,
			LayeredConfidence:     analyzer.DefaultPatternDetectorOptions().LayeredConfidence,
			PluginMinComponents:   a.PluginMinComponents,
			PluginConfidence:      analyzer.DefaultPatternDetectorOptions().PluginConfidence,
			FacadeMinExternalDeps: a.FacadeMinExternalDeps,
			FacadeMinInternalDeps: a.FacadeMinInternalDeps,
			FacadeConfidence:      analyzer.DefaultPatternDetectorOptions().FacadeConfidence,
		},
		CohesionHigh:     a.CohesionHighThreshold,
		CohesionModerate: a.CohesionModerateThreshold,
	}
}

func decodeTreeFile(path string) (analyzer.ModuleTree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()
	return analyzer.DecodeModuleTree(file)
}

func decodeGraphFile(path string) (analyzer.DependencyGraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()
	return analyzer.DecodeDependencyGraph(file)
}
