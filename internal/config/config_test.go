package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if config.Analysis.CohesionHighThreshold != DefaultCohesionHighThreshold {
		t.Errorf("Expected cohesion high threshold %g, got %g",
			DefaultCohesionHighThreshold, config.Analysis.CohesionHighThreshold)
	}
	if config.Output.Format != "text" {
		t.Errorf("Expected default format text, got %q", config.Output.Format)
	}
	if config.Output.Directory != DefaultReportDirectory {
		t.Errorf("Expected default directory %q, got %q", DefaultReportDirectory, config.Output.Directory)
	}
	if len(config.Analysis.TreePatterns) == 0 || len(config.Analysis.GraphPatterns) == 0 {
		t.Error("default discovery patterns must not be empty")
	}
}

func TestLoadConfig_NoFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Analysis.LayeredMinRoles != DefaultLayeredMinRoles {
		t.Errorf("Expected default layered_min_roles, got %d", config.Analysis.LayeredMinRoles)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	tempDir := t.TempDir()
	configContent := `analysis:
  cohesion_high_threshold: 0.8
  plugin_min_components: 4
output:
  format: json
`
	configPath := filepath.Join(tempDir, "codewiki.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Analysis.CohesionHighThreshold != 0.8 {
		t.Errorf("Expected cohesion_high_threshold 0.8, got %g", config.Analysis.CohesionHighThreshold)
	}
	if config.Analysis.PluginMinComponents != 4 {
		t.Errorf("Expected plugin_min_components 4, got %d", config.Analysis.PluginMinComponents)
	}
	if config.Output.Format != "json" {
		t.Errorf("Expected format json, got %q", config.Output.Format)
	}
	// unset keys keep their defaults
	if config.Analysis.LayeredMinRoles != DefaultLayeredMinRoles {
		t.Errorf("Expected default layered_min_roles, got %d", config.Analysis.LayeredMinRoles)
	}
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"high threshold above one", func(c *Config) { c.Analysis.CohesionHighThreshold = 1.5 }},
		{"high threshold zero", func(c *Config) { c.Analysis.CohesionHighThreshold = 0 }},
		{"moderate above high", func(c *Config) { c.Analysis.CohesionModerateThreshold = 0.9 }},
		{"moderate negative", func(c *Config) { c.Analysis.CohesionModerateThreshold = -0.1 }},
		{"layered roles zero", func(c *Config) { c.Analysis.LayeredMinRoles = 0 }},
		{"plugin components zero", func(c *Config) { c.Analysis.PluginMinComponents = 0 }},
		{"facade external zero", func(c *Config) { c.Analysis.FacadeMinExternalDeps = 0 }},
		{"no tree patterns", func(c *Config) { c.Analysis.TreePatterns = nil }},
		{"no graph patterns", func(c *Config) { c.Analysis.GraphPatterns = nil }},
		{"bad format", func(c *Config) { c.Output.Format = "html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "codewiki.yaml")

	original := DefaultConfig()
	original.Output.Format = "yaml"
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Output.Format != "yaml" {
		t.Errorf("Expected format yaml after round trip, got %q", loaded.Output.Format)
	}
	if loaded.Analysis.CohesionHighThreshold != original.Analysis.CohesionHighThreshold {
		t.Errorf("Cohesion threshold changed across round trip: %g", loaded.Analysis.CohesionHighThreshold)
	}
}

func TestLoadConfigWithTarget(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "services", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	configContent := `[output]
format = "csv"
`
	if err := os.WriteFile(filepath.Join(tempDir, ".codewiki.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfigWithTarget("", nested)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Expected format csv from ancestor .codewiki.toml, got %q", config.Output.Format)
	}
}

func TestLoadConfigWithTarget_ExplicitPathWins(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, ".codewiki.toml"), []byte("[output]\nformat = \"csv\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write toml: %v", err)
	}
	explicit := filepath.Join(tempDir, "other.yaml")
	if err := os.WriteFile(explicit, []byte("output:\n  format: dot\n"), 0644); err != nil {
		t.Fatalf("Failed to write yaml: %v", err)
	}

	config, err := LoadConfigWithTarget(explicit, tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Output.Format != "dot" {
		t.Errorf("Expected explicit config to win, got %q", config.Output.Format)
	}
}
