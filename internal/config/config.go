package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Corpus struct {
		Include []string `yaml:"include"`
		Ignore  []string `yaml:"ignore"`
	} `yaml:"corpus"`
	Reports struct {
		Dir string `yaml:"dir"`
	} `yaml:"reports"`
	Build struct {
		Dir string `yaml:"dir"`
	} `yaml:"build"`
	Schemas struct {
		Dir string `yaml:"dir"`
	} `yaml:"schemas"`
	Structure struct {
		Targets []string `yaml:"targets"`
	} `yaml:"structure"`
	Coverage struct {
		MinRequirementPct float64 `yaml:"min_requirement_pct"`
	} `yaml:"coverage"`
}

// DefaultConfig returns the configuration an audit runs with when no config
// file is present.
func DefaultConfig() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Corpus.Include = []string{"**/*.md"}
	cfg.Corpus.Ignore = []string{".git", "node_modules", "vendor", "reports", "build"}
	cfg.Reports.Dir = "reports"
	cfg.Build.Dir = "build"
	cfg.Schemas.Dir = "schemas"
	cfg.Structure.Targets = []string{
		"02-requirements/**/*.md",
		"03-architecture/**/*.md",
	}
	cfg.Coverage.MinRequirementPct = 90.0
	return &cfg
}

// LoadConfig reads the YAML config file, falling back to defaults when the
// file is absent. An audit must be runnable in a bare repository.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// 2. Load YAML config when present
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("TRACELENS_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if dir := os.Getenv("TRACELENS_REPORTS_DIR"); dir != "" {
		cfg.Reports.Dir = dir
	}
	if dir := os.Getenv("TRACELENS_BUILD_DIR"); dir != "" {
		cfg.Build.Dir = dir
	}
	if min := os.Getenv("TRACELENS_MIN_REQ"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			cfg.Coverage.MinRequirementPct = v
		}
	}

	return cfg, nil
}
