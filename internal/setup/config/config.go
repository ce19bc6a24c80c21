package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robalyx/stemdata/internal/aggregate"
	"github.com/robalyx/stemdata/pkg/utils"
)

var (
	ErrConfigFileNotFound    = errors.New("config file not found")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrInvalidConfig         = errors.New("invalid config")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v1.0.0"

// CurrentVersion is the current version of the config file.
const CurrentVersion = 1

// FileName is the name of the config file looked up in the search paths.
const FileName = "stemdata.toml"

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version   int       `koanf:"version"`
	Debug     Debug     `koanf:"debug"`
	Source    Source    `koanf:"source"`
	Normalize Normalize `koanf:"normalize"`
	Extractor Extractor `koanf:"extractor"`
	Classify  Classify  `koanf:"classify"`
	Filter    Filter    `koanf:"filter"`
	Rank      Rank      `koanf:"rank"`
	Output    Output    `koanf:"output"`
	Archive   Archive   `koanf:"archive"`
	Storage   Storage   `koanf:"storage"`
}

// Debug contains logging configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Directory that receives one session folder per run.
	LogDir string `koanf:"log_dir"`
	// Maximum session folders to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// Source describes where the dictionary files live.
type Source struct {
	// Directory containing the dictionary XML files.
	Dir string `koanf:"dir"`
	// Glob pattern for dictionary files inside Dir.
	Pattern string `koanf:"pattern"`
	// Number of files processed concurrently. 1 means sequential.
	Workers int `koanf:"workers"`
}

// Normalize configures how forms are cleaned before extraction.
type Normalize struct {
	// Runes stripped from every form (stress and morph-boundary marks).
	Markers string `koanf:"markers"`
	// Literal replacements applied after marker removal.
	Replacements map[string]string `koanf:"replacements"`
}

// Extractor configures flexion extraction.
type Extractor struct {
	// Strategy is either "pairwise" or "common".
	Strategy string `koanf:"strategy"`
	// Minimum stem length in runes for a prefix group to emit flexions.
	MinStemLength int `koanf:"min_stem_length"`
}

// Classify configures variant routing.
type Classify struct {
	// Tag prefixes of closed parts of speech whose words are always invariant.
	ClosedTags []string `koanf:"closed_tags"`
}

// Filter configures vocabulary pruning.
type Filter struct {
	// Minimum share of the base a flexion must reach. 0 disables the pass.
	MinShare float64 `koanf:"min_share"`
	// Denominator of the share: "max" or "total".
	ShareBase string `koanf:"share_base"`
	// Drop flexions that are a proper suffix of another kept flexion.
	SuffixRedundancy bool `koanf:"suffix_redundancy"`
	// Optional JSONC file with curated exceptions.
	ExceptionsPath string `koanf:"exceptions_path"`
}

// Rank configures the final flexion order.
type Rank struct {
	// Order is either "frequency" or "length".
	Order string `koanf:"order"`
}

// Output configures the build directory.
type Output struct {
	// Directory receiving the generated files.
	BuildDir string `koanf:"build_dir"`
	// Formats to write besides text (csv, sqlite, binary, chart).
	Formats []string `koanf:"formats"`
	// Number of top flexions drawn in the chart.
	ChartTop int `koanf:"chart_top"`
}

// Archive configures packaging of the build output.
type Archive struct {
	// Pack the build output at the end of a build.
	Enabled bool `koanf:"enabled"`
	// Directory receiving the archives.
	DistDir string `koanf:"dist_dir"`
	// IANA timezone used for the archive timestamp.
	Timezone string `koanf:"timezone"`
	// File name prefix of the archive.
	Prefix string `koanf:"prefix"`
}

// Storage contains S3-compatible object storage configuration for publishing archives.
type Storage struct {
	// Endpoint host, without scheme.
	Endpoint string `koanf:"endpoint"`
	// Region of the bucket.
	Region string `koanf:"region"`
	// Access key ID.
	AccessKey string `koanf:"access_key"`
	// Secret access key.
	SecretKey string `koanf:"secret_key"`
	// Bucket receiving the archives.
	Bucket string `koanf:"bucket"`
	// Key prefix inside the bucket.
	Prefix string `koanf:"prefix"`
	// Use TLS for connections.
	UseSSL bool `koanf:"use_ssl"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Debug: Debug{
			LogLevel:      "info",
			LogDir:        "logs",
			MaxLogsToKeep: 10,
		},
		Source: Source{
			Dir:     "grammardb",
			Pattern: "*.xml",
			Workers: 1,
		},
		Normalize: Normalize{
			Markers:      utils.DefaultMarkers,
			Replacements: map[string]string{},
		},
		Extractor: Extractor{
			Strategy:      "pairwise",
			MinStemLength: 1,
		},
		Classify: Classify{
			ClosedTags: slices.Clone(aggregate.DefaultClosedTags),
		},
		Filter: Filter{
			MinShare:  0,
			ShareBase: "max",
		},
		Rank: Rank{
			Order: "frequency",
		},
		Output: Output{
			BuildDir: "build",
			Formats:  []string{},
			ChartTop: 30,
		},
		Archive: Archive{
			Enabled:  true,
			DistDir:  "dist",
			Timezone: "Europe/Minsk",
			Prefix:   "STEMDATA",
		},
		Storage: Storage{
			Region: "auto",
			Prefix: "stemdata",
			UseSSL: true,
		},
	}
}

// LoadConfig loads the configuration. An explicit path must exist; otherwise the
// search paths are tried in order and the defaults are used when none holds a file.
// Returns the config along with the used config file path, empty for defaults.
func LoadConfig(path string) (*Config, string, error) {
	k := koanf.New(".")

	usedPath := ""
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrConfigFileNotFound, path, err)
		}

		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
		}

		usedPath = path
	} else {
		for _, dir := range searchPaths() {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}

			if err := k.Load(file.Provider(candidate), toml.Parser()); err != nil {
				return nil, "", fmt.Errorf("failed to load config %s: %w", candidate, err)
			}

			usedPath = candidate

			break
		}
	}

	config := Default()
	if usedPath == "" {
		return config, "", nil
	}

	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(usedPath, k.Int("version")); err != nil {
		return nil, "", err
	}

	if err := config.Validate(); err != nil {
		return nil, "", err
	}

	return config, usedPath, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.Debug.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("debug.log_level %q is not one of debug, info, warn, error", c.Debug.LogLevel))
	}

	if c.Debug.MaxLogsToKeep < 0 {
		problems = append(problems, "debug.max_logs_to_keep must not be negative")
	}

	if c.Source.Workers < 1 {
		problems = append(problems, "source.workers must be at least 1")
	}

	if c.Extractor.MinStemLength < 0 {
		problems = append(problems, "extractor.min_stem_length must not be negative")
	}

	if c.Filter.MinShare < 0 || c.Filter.MinShare > 1 {
		problems = append(problems, fmt.Sprintf("filter.min_share %v must be within [0, 1]", c.Filter.MinShare))
	}

	if c.Output.BuildDir == "" {
		problems = append(problems, "output.build_dir must not be empty")
	}

	if c.Output.ChartTop < 1 {
		problems = append(problems, "output.chart_top must be at least 1")
	}

	if c.Archive.Enabled && c.Archive.DistDir == "" {
		problems = append(problems, "archive.dist_dir must not be empty when archiving is enabled")
	}

	if _, err := time.LoadLocation(c.Archive.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("archive.timezone %q: %v", c.Archive.Timezone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// searchPaths lists the directories searched for the config file.
func searchPaths() []string {
	paths := []string{".stemdata"}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".stemdata", "config"))
	}

	return append(paths, "/etc/stemdata/config", "config", ".")
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(path string, current int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, path)
	}

	if current != CurrentVersion {
		return fmt.Errorf(
			"%w: %s (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/stemdata/tree/%s/config/%s",
			ErrConfigVersionMismatch,
			path,
			current,
			CurrentVersion,
			RepositoryVersion,
			FileName,
		)
	}

	return nil
}
