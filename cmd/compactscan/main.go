// Command compactscan runs the Compact static-analysis detectors over a
// set of source files or directories and prints a JSON report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/detect"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/internal/config"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/internal/logging"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const scannerOrg = "OpenZeppelin"
const scannerVersion = "0.1.0"

func main() {
	config.LoadDotEnv()

	rootCmd := &cobra.Command{
		Use:   "compactscan",
		Short: "Static analysis detectors for the Compact smart contract language",
	}

	cfg := config.BindFlags(rootCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := logging.New(cfg.Verbose)
		registry := defaultRegistry()

		if cfg.WithMetadata {
			return printMetadata(registry)
		}

		return runScan(cmd.Context(), registry, cfg, args, log)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultRegistry() *detect.Registry {
	reg := detect.NewRegistry()
	reg.Register(detect.NewArrayLoopBoundCheck())
	reg.Register(detect.NewAssertionErrorMessageVerbose())
	return reg
}

func printMetadata(registry *detect.Registry) error {
	type catalogue struct {
		Organisation string            `json:"organisation"`
		Version      string            `json:"version"`
		Detectors    []detect.Metadata `json:"detectors"`
	}
	out := catalogue{Organisation: scannerOrg, Version: scannerVersion}
	for _, d := range registry.All() {
		out.Detectors = append(out.Detectors, d.Metadata())
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runScan(ctx context.Context, registry *detect.Registry, cfg *config.Scan, paths []string, log logging.Logger) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	root := cfg.ProjectRoot
	if root == "" {
		root = project.DetectRoot(paths[0])
	}

	open := codebase.New()
	envelope := Envelope{Errors: []string{}}

	hadFileErrors := false
	for _, path := range paths {
		if err := addPath(ctx, open, path, root, &envelope, log); err != nil {
			envelope.Errors = append(envelope.Errors, err.Error())
			hadFileErrors = true
		}
	}

	sealed, err := open.Seal()
	if err != nil {
		return err
	}
	envelope.FilesScanned = sealed.SortedFiles()

	for _, d := range registry.Select(cfg.DetectorNames) {
		envelope.DetectorResponses = append(envelope.DetectorResponses, runDetector(sealed, d, log))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return err
	}
	if hadFileErrors {
		return fmt.Errorf("%d of %d input paths failed to parse or build", len(envelope.Errors), len(paths))
	}
	return nil
}

func addPath(ctx context.Context, open *codebase.Open, path, projectRoot string, envelope *Envelope, log logging.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if info.IsDir() {
		_, err := open.ScanDir(ctx, path)
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rel := path
	if r, err := filepath.Rel(projectRoot, path); err == nil {
		rel = r
	}
	if _, err := open.AddFile(rel, data); err != nil {
		log.Warn("failed to add file", zap.String("path", rel), zap.Error(err))
		return fmt.Errorf("%s: %w", rel, err)
	}
	return nil
}

func runDetector(sealed *codebase.Sealed, d detect.Detector, log logging.Logger) DetectorResponse {
	meta := d.Metadata()
	findings, err := d.Check(sealed)
	if err != nil {
		log.Error("detector failed", zap.String("detector", meta.UID), zap.Error(err))
		return DetectorResponse{
			Result: map[string]DetectorResult{meta.UID: {Finding: FindingList{Instances: []Instance{}}}},
			Errors: []string{err.Error()},
		}
	}
	instances := make([]Instance, 0, len(findings))
	for _, f := range findings {
		instances = append(instances, Instance{
			FilePath:       f.FilePath,
			OffsetStart:    f.OffsetStart,
			OffsetEnd:      f.OffsetEnd,
			SuggestedFixes: []string{},
			Extras:         f.Extras,
		})
	}
	return DetectorResponse{
		Result: map[string]DetectorResult{meta.UID: {Finding: FindingList{Instances: instances}}},
	}
}
