package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codewiki-dev/codewiki/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory determines the output directory from configuration.
// Returns directory path and any error encountered during config loading.
func resolveOutputDirectory(targetPath string) (string, error) {
	cfg, err := config.LoadConfigWithTarget("", targetPath)
	if err != nil {
		// Don't hide configuration errors - they should be visible to users
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory, nil
	}

	// Default output directory when not specified in config. A hidden
	// tool directory under the CWD avoids writing into analyzed sources.
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".codewiki", "reports"), nil
	}
	return filepath.Join(cwd, ".codewiki", "reports"), nil
}

// generateOutputFilePath combines filename generation and directory
// resolution, creating the directory when needed.
func generateOutputFilePath(command, extension, targetPath string) (string, error) {
	filename := generateTimestampedFileName(command, extension)
	outputDir, err := resolveOutputDirectory(targetPath)
	if err != nil {
		return "", err
	}

	if mkErr := os.MkdirAll(outputDir, 0o755); mkErr != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, mkErr)
	}
	return filepath.Join(outputDir, filename), nil
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// expandAndValidatePaths turns CLI args into absolute, existing paths
func expandAndValidatePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		expanded, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", arg, err)
		}
		if _, err := os.Stat(expanded); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path does not exist: %s", arg)
			}
			return nil, fmt.Errorf("cannot access path %s: %w", arg, err)
		}
		paths = append(paths, expanded)
	}
	return paths, nil
}
