package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/codewiki-dev/codewiki/domain"
)

// AnalysisFormatterImpl implements domain.AnalysisOutputFormatter
type AnalysisFormatterImpl struct {
	utils *FormatUtils
}

// NewAnalysisFormatter creates a new analysis output formatter
func NewAnalysisFormatter() *AnalysisFormatterImpl {
	return &AnalysisFormatterImpl{utils: NewFormatUtils()}
}

// Write implements domain.AnalysisOutputFormatter
func (f *AnalysisFormatterImpl) Write(response *domain.AnalysisResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := w.Write([]byte(f.formatText(response)))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, response)
	case domain.OutputFormatYAML:
		return WriteYAML(w, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, w)
	case domain.OutputFormatDOT:
		if response.DOT == "" {
			return domain.NewOutputError("response carries no DOT graph", nil)
		}
		_, err := io.WriteString(w, response.DOT)
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *AnalysisFormatterImpl) formatText(response *domain.AnalysisResponse) string {
	var b strings.Builder

	b.WriteString(f.utils.FormatMainHeader("Structural Analysis"))

	b.WriteString(f.utils.FormatSectionHeader("SUMMARY"))
	s := response.Summary
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Modules", s.TotalModules))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Leaf Modules", s.LeafModules))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Parent Modules", s.ParentModules))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Components", s.TotalComponents))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Max Depth", s.MaxDepth))
	b.WriteString(f.utils.FormatSectionSeparator())

	if len(response.ProcessingOrder) > 0 {
		b.WriteString(f.utils.FormatSectionHeader("PROCESSING ORDER"))
		for i, batch := range response.ProcessingOrder {
			b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding,
				fmt.Sprintf("Level %d", i+1), strings.Join(batch, ", ")))
		}
		b.WriteString(f.utils.FormatSectionSeparator())
	}

	if len(response.Modules) > 0 {
		b.WriteString(f.utils.FormatSectionHeader("MODULES"))
		for _, modulePath := range sortedModulePaths(response.Modules) {
			f.writeModuleText(&b, response.Modules[modulePath])
		}
	}

	if response.HierarchyMermaid != "" {
		b.WriteString(f.utils.FormatSectionHeader("MODULE HIERARCHY"))
		b.WriteString(response.HierarchyMermaid)
		b.WriteString(f.utils.FormatSectionSeparator())
	}

	b.WriteString(f.utils.FormatWarningsSection(response.Warnings))

	if len(response.Errors) > 0 {
		b.WriteString(f.utils.FormatSectionHeader("ERRORS"))
		for _, e := range response.Errors {
			b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "x", e))
		}
		b.WriteString(f.utils.FormatSectionSeparator())
	}

	return b.String()
}

func (f *AnalysisFormatterImpl) writeModuleText(b *strings.Builder, report *domain.ModuleReport) {
	fmt.Fprintf(b, "\n%s\n", report.Module)
	if !report.Found {
		b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Error", report.Error))
		return
	}

	c := report.Complexity
	b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Components", c.ComponentCount))
	b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Internal Edges", c.InternalEdgeCount))
	b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "External Edges", c.ExternalEdgeCount))
	b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Cohesion",
		fmt.Sprintf("%s (%s)", f.utils.FormatScore(c.CohesionScore), c.CohesionLevel)))

	if len(report.Dependencies) > 0 {
		targets := make([]string, 0, len(report.Dependencies))
		for _, g := range report.Dependencies {
			targets = append(targets, g.TargetModule)
		}
		b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Depends On", strings.Join(targets, ", ")))
	}
	if len(report.Dependents) > 0 {
		sources := make([]string, 0, len(report.Dependents))
		for _, g := range report.Dependents {
			sources = append(sources, g.SourceModule)
		}
		b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Used By", strings.Join(sources, ", ")))
	}

	for _, p := range report.Patterns.Patterns {
		b.WriteString(f.utils.FormatLabelWithIndent(ItemPadding, "Pattern",
			fmt.Sprintf("%s (%.0f%%)", p.Type, p.Confidence*100)))
	}
}

func (f *AnalysisFormatterImpl) writeCSV(response *domain.AnalysisResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"module", "components", "internal_edges", "external_edges", "cohesion_score", "cohesion_level", "is_leaf"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, modulePath := range sortedModulePaths(response.Modules) {
		report := response.Modules[modulePath]
		if !report.Found {
			continue
		}
		c := report.Complexity
		row := []string{
			report.Module,
			strconv.Itoa(c.ComponentCount),
			strconv.Itoa(c.InternalEdgeCount),
			strconv.Itoa(c.ExternalEdgeCount),
			strconv.FormatFloat(c.CohesionScore, 'f', 4, 64),
			c.CohesionLevel,
			strconv.FormatBool(report.Summary.IsLeaf),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sortedModulePaths(modules map[string]*domain.ModuleReport) []string {
	paths := make([]string, 0, len(modules))
	for path := range modules {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
