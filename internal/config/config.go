// Package config holds the CLI-facing configuration shared by
// cmd/compactscan's subcommands, populated from flags, .env, and
// environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Scan holds the options a scan invocation is configured with.
type Scan struct {
	Paths         []string
	DetectorNames []string
	ProjectRoot   string
	WithMetadata  bool
	Verbose       bool
}

// LoadDotEnv loads a .env file from the working directory if one is
// present. A missing file is not an error; godotenv.Load's error is
// intentionally discarded, matching the convention of loading best-effort
// configuration that may simply not exist.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// BindFlags registers the scan flags on cmd and returns a Scan whose
// fields are filled in once cmd's flags have been parsed.
func BindFlags(cmd *cobra.Command) *Scan {
	cfg := &Scan{}
	cmd.Flags().StringSliceVar(&cfg.DetectorNames, "detectors", nil, "detector names to run (default: all)")
	cmd.Flags().StringVar(&cfg.ProjectRoot, "project-root", "", "root directory the scanned paths are relative to (default: auto-detected from the first path)")
	cmd.Flags().BoolVar(&cfg.WithMetadata, "metadata", false, "emit detector metadata instead of running a scan")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
	return cfg
}

// EnvOr returns the environment variable key's value, or fallback if it is
// unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
