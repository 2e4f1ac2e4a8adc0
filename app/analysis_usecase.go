package app

import (
	"context"
	"fmt"
	"io"

	"github.com/codewiki-dev/codewiki/domain"
	svc "github.com/codewiki-dev/codewiki/service"
)

// AnalysisUseCase orchestrates the structural analysis workflow
type AnalysisUseCase struct {
	service   domain.AnalysisService
	formatter domain.AnalysisOutputFormatter
	output    domain.ReportWriter
}

// NewAnalysisUseCase creates a new structural analysis use case
func NewAnalysisUseCase(service domain.AnalysisService, formatter domain.AnalysisOutputFormatter) *AnalysisUseCase {
	return &AnalysisUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute performs the full analysis and writes formatted output
func (uc *AnalysisUseCase) Execute(ctx context.Context, req domain.AnalysisRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("structural analysis failed", err)
	}

	return uc.write(req, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

// ExecuteModule analyzes a single module and writes its report
func (uc *AnalysisUseCase) ExecuteModule(ctx context.Context, req domain.AnalysisRequest, modulePath string) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	report, err := uc.service.AnalyzeModule(ctx, req, modulePath)
	if err != nil {
		return domain.NewAnalysisError("module analysis failed", err)
	}

	return uc.write(req, func(w io.Writer) error {
		return writeSingle(w, req.OutputFormat, report)
	})
}

// ExecuteComponent analyzes a single component and writes its report
func (uc *AnalysisUseCase) ExecuteComponent(ctx context.Context, req domain.AnalysisRequest, componentID string) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	report, err := uc.service.AnalyzeComponent(ctx, req, componentID)
	if err != nil {
		return domain.NewAnalysisError("component analysis failed", err)
	}

	return uc.write(req, func(w io.Writer) error {
		return writeSingle(w, req.OutputFormat, report)
	})
}

// ExecuteSummary writes the repository overview
func (uc *AnalysisUseCase) ExecuteSummary(ctx context.Context, req domain.AnalysisRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	summary, err := uc.service.Summarize(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("summary failed", err)
	}

	return uc.write(req, func(w io.Writer) error {
		return writeSingle(w, req.OutputFormat, summary)
	})
}

func (uc *AnalysisUseCase) write(req domain.AnalysisRequest, writeFunc func(io.Writer) error) error {
	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, writeFunc); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (uc *AnalysisUseCase) validateRequest(req domain.AnalysisRequest) error {
	explicit := req.ModuleTreePath != "" && req.DependencyGraph != ""
	if len(req.Paths) == 0 && !explicit {
		return fmt.Errorf("no input paths or artifact files specified")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// writeSingle encodes one report value in the requested format. Text falls
// back to YAML, which reads well for single reports; DOT only makes sense
// for the full analysis.
func writeSingle(w io.Writer, format domain.OutputFormat, v interface{}) error {
	switch format {
	case domain.OutputFormatJSON:
		return svc.WriteJSON(w, v)
	case domain.OutputFormatText, domain.OutputFormatYAML:
		return svc.WriteYAML(w, v)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// AnalysisUseCaseBuilder provides a fluent builder for AnalysisUseCase
type AnalysisUseCaseBuilder struct {
	service   domain.AnalysisService
	formatter domain.AnalysisOutputFormatter
	output    domain.ReportWriter
}

func NewAnalysisUseCaseBuilder() *AnalysisUseCaseBuilder { return &AnalysisUseCaseBuilder{} }

func (b *AnalysisUseCaseBuilder) WithService(s domain.AnalysisService) *AnalysisUseCaseBuilder {
	b.service = s
	return b
}

func (b *AnalysisUseCaseBuilder) WithFormatter(f domain.AnalysisOutputFormatter) *AnalysisUseCaseBuilder {
	b.formatter = f
	return b
}

func (b *AnalysisUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *AnalysisUseCaseBuilder {
	b.output = w
	return b
}

func (b *AnalysisUseCaseBuilder) Build() (*AnalysisUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &AnalysisUseCase{
		service:   b.service,
		formatter: b.formatter,
		output:    b.output,
	}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
