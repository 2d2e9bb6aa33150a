// Package config loads the optional YAML settings file that adjusts
// pipeline tolerances, outline scoring cut-offs, logging, and batch
// paths. Absent fields keep the pipeline defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/logging"
	"github.com/tsawler/titulus/outline"
)

// Merge adjusts span-to-line clustering.
type Merge struct {
	// YTolerance is the vertical grid step for merging spans into lines.
	YTolerance float64 `yaml:"y_tolerance"`

	// XGapTolerance is the horizontal gap beyond which a space is
	// inserted between merged spans.
	XGapTolerance float64 `yaml:"x_gap_tolerance"`
}

// Analysis adjusts the layout statistics histograms.
type Analysis struct {
	ShortLineLimit   int `yaml:"short_line_limit"`
	LongLineLimit    int `yaml:"long_line_limit"`
	MinPatternLength int `yaml:"min_pattern_length"`
}

// Thresholds are the outline level score cut-offs.
type Thresholds struct {
	H1 int `yaml:"h1"`
	H2 int `yaml:"h2"`
	H3 int `yaml:"h3"`
	H4 int `yaml:"h4"`
}

// Outline adjusts title and heading scoring.
type Outline struct {
	// MaxHeadings caps the final outline length.
	MaxHeadings int `yaml:"max_headings"`

	// TitleMinScore is the minimum score a line needs to become the
	// document title.
	TitleMinScore int `yaml:"title_min_score"`

	Thresholds Thresholds `yaml:"thresholds"`
}

// Batch configures directory processing.
type Batch struct {
	// Input is the directory scanned for documents.
	Input string `yaml:"input"`

	// Output is the directory result files are written to.
	Output string `yaml:"output"`

	// Catalog is the path of the SQLite run catalog. Empty disables
	// cataloguing.
	Catalog string `yaml:"catalog"`
}

// Config is the full settings file.
type Config struct {
	Merge    Merge          `yaml:"merge"`
	Analysis Analysis       `yaml:"analysis"`
	Outline  Outline        `yaml:"outline"`
	Logging  logging.Config `yaml:"logging"`
	Batch    Batch          `yaml:"batch"`
}

// Default returns the configuration matching the pipeline defaults.
func Default() *Config {
	merger := layout.DefaultMergerConfig()
	analyzer := layout.DefaultAnalyzerConfig()
	extractor := outline.DefaultExtractorConfig()

	return &Config{
		Merge: Merge{
			YTolerance:    merger.YTolerance,
			XGapTolerance: merger.XGapTolerance,
		},
		Analysis: Analysis{
			ShortLineLimit:   analyzer.ShortLineLimit,
			LongLineLimit:    analyzer.LongLineLimit,
			MinPatternLength: analyzer.MinPatternLength,
		},
		Outline: Outline{
			MaxHeadings:   extractor.MaxHeadings,
			TitleMinScore: extractor.Title.MinScore,
			Thresholds: Thresholds{
				H1: extractor.Heading.Thresholds.H1,
				H2: extractor.Heading.Thresholds.H2,
				H3: extractor.Heading.Thresholds.H3,
				H4: extractor.Heading.Thresholds.H4,
			},
		},
		Logging: logging.Config{
			Style: logging.StyleTerminal,
			Level: "info",
		},
	}
}

// Load reads a YAML settings file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromBytes parses YAML settings over the defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return cfg, nil
}

// Pipeline converts the settings into the inference pipeline's
// configuration.
func (c *Config) Pipeline() titulus.Config {
	pipeline := titulus.DefaultConfig()

	pipeline.Merger.YTolerance = c.Merge.YTolerance
	pipeline.Merger.XGapTolerance = c.Merge.XGapTolerance

	pipeline.Analyzer.ShortLineLimit = c.Analysis.ShortLineLimit
	pipeline.Analyzer.LongLineLimit = c.Analysis.LongLineLimit
	pipeline.Analyzer.MinPatternLength = c.Analysis.MinPatternLength

	pipeline.Outline.MaxHeadings = c.Outline.MaxHeadings
	pipeline.Outline.Title.MinScore = c.Outline.TitleMinScore
	pipeline.Outline.Heading.Thresholds = outline.HeadingThresholds{
		H1: c.Outline.Thresholds.H1,
		H2: c.Outline.Thresholds.H2,
		H3: c.Outline.Thresholds.H3,
		H4: c.Outline.Thresholds.H4,
	}

	return pipeline
}
