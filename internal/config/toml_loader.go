package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CodewikiTomlConfig represents the structure of .codewiki.toml. Numeric
// and string fields use pointers so an absent key is distinguishable from
// an explicit zero.
type CodewikiTomlConfig struct {
	Analysis CodewikiTomlAnalysisConfig `toml:"analysis"`
	Output   CodewikiTomlOutputConfig   `toml:"output"`
}

type CodewikiTomlAnalysisConfig struct {
	CohesionHighThreshold     *float64 `toml:"cohesion_high_threshold"`
	CohesionModerateThreshold *float64 `toml:"cohesion_moderate_threshold"`
	LayeredMinRoles           *int     `toml:"layered_min_roles"`
	LayeredMinRoleMembers     *int     `toml:"layered_min_role_members"`
	PluginMinComponents       *int     `toml:"plugin_min_components"`
	FacadeMinExternalDeps     *int     `toml:"facade_min_external_deps"`
	FacadeMinInternalDeps     *int     `toml:"facade_min_internal_deps"`
	TreePatterns              []string `toml:"tree_patterns"`
	GraphPatterns             []string `toml:"graph_patterns"`
}

type CodewikiTomlOutputConfig struct {
	Format    *string `toml:"format"`
	Directory *string `toml:"directory"`
}

// TomlConfigLoader handles TOML configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .codewiki.toml by walking up from startDir and loads it,
// falling back to defaults when no file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := findCodewikiToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile loads one TOML file and merges it over the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var fileConfig CodewikiTomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	mergeTomlConfig(config, &fileConfig)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// mergeTomlConfig applies every explicitly set key over the defaults
func mergeTomlConfig(defaults *Config, fileConfig *CodewikiTomlConfig) {
	a := &fileConfig.Analysis
	if a.CohesionHighThreshold != nil {
		defaults.Analysis.CohesionHighThreshold = *a.CohesionHighThreshold
	}
	if a.CohesionModerateThreshold != nil {
		defaults.Analysis.CohesionModerateThreshold = *a.CohesionModerateThreshold
	}
	if a.LayeredMinRoles != nil {
		defaults.Analysis.LayeredMinRoles = *a.LayeredMinRoles
	}
	if a.LayeredMinRoleMembers != nil {
		defaults.Analysis.LayeredMinRoleMembers = *a.LayeredMinRoleMembers
	}
	if a.PluginMinComponents != nil {
		defaults.Analysis.PluginMinComponents = *a.PluginMinComponents
	}
	if a.FacadeMinExternalDeps != nil {
		defaults.Analysis.FacadeMinExternalDeps = *a.FacadeMinExternalDeps
	}
	if a.FacadeMinInternalDeps != nil {
		defaults.Analysis.FacadeMinInternalDeps = *a.FacadeMinInternalDeps
	}
	if len(a.TreePatterns) > 0 {
		defaults.Analysis.TreePatterns = append([]string{}, a.TreePatterns...)
	}
	if len(a.GraphPatterns) > 0 {
		defaults.Analysis.GraphPatterns = append([]string{}, a.GraphPatterns...)
	}

	o := &fileConfig.Output
	if o.Format != nil {
		defaults.Output.Format = *o.Format
	}
	if o.Directory != nil {
		defaults.Output.Directory = *o.Directory
	}
}

// findCodewikiToml walks up the directory tree to find .codewiki.toml
func findCodewikiToml(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".codewiki.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
