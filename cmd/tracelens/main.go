package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tracelens/internal/config"
	"tracelens/internal/corpus"
	"tracelens/internal/gate"
	"tracelens/internal/identifier"
	"tracelens/internal/report"
	"tracelens/internal/specindex"
	"tracelens/internal/structure"
	"tracelens/internal/trace"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tracelens",
		Short: "Documentation traceability auditor",
	}
	configPath   string
	artifactPath string
	reportsDir   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tracelens.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&artifactPath, "artifact", "", "Path to traceability.json (default <build dir>/traceability.json)")
	rootCmd.PersistentFlags().StringVar(&reportsDir, "reports-dir", "", "Directory for markdown reports (default from config)")

	validateCmd.Flags().Float64Var(&minReq, "min-req", gate.DefaultMinimum, "Minimum percent of requirements with at least one link")
	validateCmd.Flags().StringVar(&metricKey, "metric", gate.DefaultMetricKey, "Metrics group key to gate on")

	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(structureCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if reportsDir != "" {
		cfg.Reports.Dir = reportsDir
	}
	return cfg
}

func resolveArtifact(cfg *config.Config) string {
	if artifactPath != "" {
		return artifactPath
	}
	return filepath.Join(cfg.Build.Dir, "traceability.json")
}

var matrixCmd = &cobra.Command{
	Use:   "matrix [path]",
	Short: "Scan the corpus, infer links heuristically, and write the matrix and orphan reports",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := cfg.Project.Root
		if len(args) > 0 {
			root = args[0]
		}

		fmt.Printf("📂 Scanning corpus: %s\n", root)
		start := time.Now()

		walker := corpus.NewWalker(cfg.Corpus.Include, cfg.Corpus.Ignore)
		scanner := identifier.NewScanner()
		docs := make(map[string]string)
		err := walker.Walk(root, func(d corpus.Document) {
			scanner.Add(d.Path, d.Text)
			docs[d.Path] = d.Text
		})
		if err != nil {
			log.Fatalf("Corpus walk failed: %v", err)
		}

		idx := scanner.Build()
		groups := idx.Grouped()
		fmt.Printf("✅ Scanned %d documents in %v\n", len(docs), time.Since(start))

		fmt.Println("🔗 Inferring links (co-occurrence heuristic)...")
		g := trace.InferLinks(idx, docs)

		metrics := trace.Metrics{
			Groups:     trace.ComputeMetrics(groups, g, trace.Normalized),
			Dimensions: trace.ComputeDimensions(groups[identifier.KindRequirement], g),
		}
		orphans := trace.DetectOrphans(groups, g)

		matrixPath := filepath.Join(cfg.Reports.Dir, "traceability-matrix.md")
		orphansPath := filepath.Join(cfg.Reports.Dir, "orphans.md")
		if err := report.WriteMatrix(matrixPath, groups[identifier.KindRequirement], g); err != nil {
			log.Fatalf("Failed to write matrix: %v", err)
		}
		if err := report.WriteOrphans(orphansPath, orphans); err != nil {
			log.Fatalf("Failed to write orphan report: %v", err)
		}

		artifact := trace.BuildArtifact(nil, g, metrics)
		out := resolveArtifact(cfg)
		if err := trace.SaveArtifact(out, artifact); err != nil {
			log.Fatalf("Failed to write artifact: %v", err)
		}

		fmt.Printf("📝 Wrote %s and %s\n", matrixPath, orphansPath)
		fmt.Printf("💾 Wrote %s\n", out)
		// Orphans are findings, not failures: the validate command gates.
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Build the traceability artifact from a precomputed spec index",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		indexPath := filepath.Join(cfg.Build.Dir, "spec-index.json")

		idx, err := specindex.Load(indexPath)
		if err != nil {
			if errors.Is(err, specindex.ErrIndexMissing) {
				fmt.Fprintf(os.Stderr, "Missing %s; run the spec parser first\n", indexPath)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("🔗 Building traceability graph from %d declared items...\n", len(idx.Items))
		g := trace.FromIndex(idx.Items)
		groups := trace.GroupIDs(idx.Items)

		metrics := trace.Metrics{
			Groups:     trace.ComputeMetrics(groups, g, trace.Normalized),
			Dimensions: trace.ComputeDimensions(groups[identifier.KindRequirement], g),
		}

		artifact := trace.BuildArtifact(idx.Items, g, metrics)
		out := resolveArtifact(cfg)
		if err := trace.SaveArtifact(out, artifact); err != nil {
			log.Fatalf("Failed to write artifact: %v", err)
		}
		fmt.Printf("💾 Wrote %s\n", out)
	},
}

var (
	minReq    float64
	metricKey string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Gate on minimum requirement-linkage coverage from the traceability artifact",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		min := minReq
		if !cmd.Flags().Changed("min-req") {
			min = cfg.Coverage.MinRequirementPct
		}

		result := gate.Check(resolveArtifact(cfg), metricKey, min)
		switch result.Status {
		case gate.Pass:
			fmt.Printf("✅ %s\n", result.Message)
		case gate.BelowThreshold:
			fmt.Printf("❌ %s\n", result.Message)
		case gate.DataUnavailable:
			fmt.Fprintln(os.Stderr, result.Message)
		}
		os.Exit(result.Status.ExitCode())
	},
}

var structureCmd = &cobra.Command{
	Use:   "structure [path ...]",
	Short: "Validate spec document front matter against JSON Schemas",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		targets, err := structureTargets(cfg, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", err)
			os.Exit(2)
		}
		if len(targets) == 0 {
			fmt.Fprintln(os.Stderr, "No spec files found to validate")
			os.Exit(0)
		}

		validator := structure.NewValidator(cfg.Schemas.Dir)
		failed := 0
		for _, target := range targets {
			issues := validator.ValidateFile(target)
			if len(issues) == 0 {
				fmt.Printf("✅ %s valid\n", target)
				continue
			}
			for _, issue := range issues {
				fmt.Printf("❌ %s: %s\n", issue.File, issue.Message)
			}
			failed += len(issues)
		}

		if failed > 0 {
			fmt.Printf("\nFailed: %d validation issues.\n", failed)
			os.Exit(1)
		}
		fmt.Println("All specs validated successfully.")
	},
}

// structureTargets resolves explicit arguments or the configured glob
// patterns to spec files.
func structureTargets(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var targets []string
	for _, pattern := range cfg.Structure.Targets {
		matches, err := doublestar.FilepathGlob(filepath.Join(cfg.Project.Root, pattern))
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if filepath.Base(m) == "README.md" {
				continue
			}
			targets = append(targets, m)
		}
	}
	return targets, nil
}
