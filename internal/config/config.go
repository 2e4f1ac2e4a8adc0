package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default cohesion thresholds. A module whose internal edge share exceeds
// the high threshold is labeled "high", above the moderate threshold
// "moderate", otherwise "low".
const (
	DefaultCohesionHighThreshold     = 0.7
	DefaultCohesionModerateThreshold = 0.4
)

// Default pattern detection thresholds
const (
	DefaultLayeredMinRoles       = 3
	DefaultLayeredMinRoleMembers = 2
	DefaultPluginMinComponents   = 2
	DefaultFacadeMinExternalDeps = 3
	DefaultFacadeMinInternalDeps = 3
)

// Default artifact discovery globs, relative to each analyzed path
var (
	DefaultTreePatterns  = []string{"**/module_tree.json"}
	DefaultGraphPatterns = []string{"**/dependency_graph.json"}
)

// DefaultReportDirectory is where generated reports land unless overridden
const DefaultReportDirectory = ".codewiki/reports"

// Config represents the main configuration structure
type Config struct {
	// Analysis holds the heuristic thresholds and artifact discovery globs
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" toml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`
}

// AnalysisConfig holds the knobs of the analysis engine
type AnalysisConfig struct {
	// CohesionHighThreshold is the lower bound (exclusive) of the "high" label
	CohesionHighThreshold float64 `mapstructure:"cohesion_high_threshold" yaml:"cohesion_high_threshold" toml:"cohesion_high_threshold"`

	// CohesionModerateThreshold is the lower bound (exclusive) of "moderate"
	CohesionModerateThreshold float64 `mapstructure:"cohesion_moderate_threshold" yaml:"cohesion_moderate_threshold" toml:"cohesion_moderate_threshold"`

	// LayeredMinRoles is the distinct role count a layered module needs
	LayeredMinRoles int `mapstructure:"layered_min_roles" yaml:"layered_min_roles" toml:"layered_min_roles"`

	// LayeredMinRoleMembers is the size the largest role group must reach
	LayeredMinRoleMembers int `mapstructure:"layered_min_role_members" yaml:"layered_min_role_members" toml:"layered_min_role_members"`

	// PluginMinComponents is how many plugin-named components flag the pattern
	PluginMinComponents int `mapstructure:"plugin_min_components" yaml:"plugin_min_components" toml:"plugin_min_components"`

	// FacadeMinExternalDeps is the external fan-in a facade candidate needs
	FacadeMinExternalDeps int `mapstructure:"facade_min_external_deps" yaml:"facade_min_external_deps" toml:"facade_min_external_deps"`

	// FacadeMinInternalDeps is the internal fan-out a facade candidate needs
	FacadeMinInternalDeps int `mapstructure:"facade_min_internal_deps" yaml:"facade_min_internal_deps" toml:"facade_min_internal_deps"`

	// TreePatterns are the globs used to locate module tree artifacts
	TreePatterns []string `mapstructure:"tree_patterns" yaml:"tree_patterns" toml:"tree_patterns"`

	// GraphPatterns are the globs used to locate dependency graph artifacts
	GraphPatterns []string `mapstructure:"graph_patterns" yaml:"graph_patterns" toml:"graph_patterns"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format selects the report encoding: text, json, yaml, csv or dot
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// Directory is where report files are written
	Directory string `mapstructure:"directory" yaml:"directory" toml:"directory"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			CohesionHighThreshold:     DefaultCohesionHighThreshold,
			CohesionModerateThreshold: DefaultCohesionModerateThreshold,
			LayeredMinRoles:           DefaultLayeredMinRoles,
			LayeredMinRoleMembers:     DefaultLayeredMinRoleMembers,
			PluginMinComponents:       DefaultPluginMinComponents,
			FacadeMinExternalDeps:     DefaultFacadeMinExternalDeps,
			FacadeMinInternalDeps:     DefaultFacadeMinInternalDeps,
			TreePatterns:              append([]string{}, DefaultTreePatterns...),
			GraphPatterns:             append([]string{}, DefaultGraphPatterns...),
		},
		Output: OutputConfig{
			Format:    "text",
			Directory: DefaultReportDirectory,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path specified, try to find default config files
	if configPath == "" {
		configPath = findDefaultConfig()
	}

	// If still no config found, return default
	if configPath == "" {
		return config, nil
	}

	if filepath.Ext(configPath) == ".toml" {
		loader := NewTomlConfigLoader()
		return loader.LoadFile(configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget loads configuration for an analysis of targetDir:
// an explicit path wins, otherwise .codewiki.toml is searched upward from
// the target, then the usual default locations apply.
func LoadConfigWithTarget(configPath, targetDir string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	if targetDir != "" {
		if found, err := findCodewikiToml(targetDir); err == nil {
			loader := NewTomlConfigLoader()
			return loader.LoadFile(found)
		}
	}

	return LoadConfig("")
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		".codewiki.toml",
		"codewiki.yaml",
		"codewiki.yml",
		".codewiki.yaml",
		".codewiki.yml",
	}

	// Check current directory first
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	a := &c.Analysis

	if a.CohesionHighThreshold <= 0 || a.CohesionHighThreshold > 1 {
		return fmt.Errorf("analysis.cohesion_high_threshold must be in (0, 1], got %g", a.CohesionHighThreshold)
	}
	if a.CohesionModerateThreshold < 0 || a.CohesionModerateThreshold >= a.CohesionHighThreshold {
		return fmt.Errorf("analysis.cohesion_moderate_threshold (%g) must be in [0, high threshold %g)",
			a.CohesionModerateThreshold, a.CohesionHighThreshold)
	}
	if a.LayeredMinRoles < 1 {
		return fmt.Errorf("analysis.layered_min_roles must be >= 1, got %d", a.LayeredMinRoles)
	}
	if a.LayeredMinRoleMembers < 1 {
		return fmt.Errorf("analysis.layered_min_role_members must be >= 1, got %d", a.LayeredMinRoleMembers)
	}
	if a.PluginMinComponents < 1 {
		return fmt.Errorf("analysis.plugin_min_components must be >= 1, got %d", a.PluginMinComponents)
	}
	if a.FacadeMinExternalDeps < 1 {
		return fmt.Errorf("analysis.facade_min_external_deps must be >= 1, got %d", a.FacadeMinExternalDeps)
	}
	if a.FacadeMinInternalDeps < 1 {
		return fmt.Errorf("analysis.facade_min_internal_deps must be >= 1, got %d", a.FacadeMinInternalDeps)
	}
	if len(a.TreePatterns) == 0 {
		return fmt.Errorf("analysis.tree_patterns must not be empty")
	}
	if len(a.GraphPatterns) == 0 {
		return fmt.Errorf("analysis.graph_patterns must not be empty")
	}

	switch c.Output.Format {
	case "text", "json", "yaml", "csv", "dot":
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, csv, dot; got %q", c.Output.Format)
	}

	return nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
