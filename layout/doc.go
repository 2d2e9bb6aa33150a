// Package layout turns raw text spans into merged lines and document-wide
// typographic statistics.
//
// This package is the middle of the inference pipeline: span sources feed
// it fragments, and the outline package consumes its output to score title
// and heading candidates.
//
// # Line Merging
//
// The [Merger] groups spans that share a page and a quantized vertical
// position, then joins each group left to right:
//
//	merger := layout.NewMerger()
//	lines := merger.Merge(spans)
//
// Spans whose vertical positions fall in the same quantization bucket
// belong to one line; a configurable horizontal gap decides whether
// adjacent spans are joined with or without a space.
//
// # Structure Analysis
//
// The [Analyzer] computes the statistics that later stages score against:
//
//	structure := layout.NewAnalyzer().Analyze(lines)
//
// The resulting [Structure] contains:
//
//   - GlobalFonts - font size statistics across the whole document
//   - PageFonts - the same statistics per page
//   - Patterns - counts of numbered sections, all-caps lines, and line
//     length classes
//   - PageLayouts - top and bottom text margins per page, the basis for
//     [Structure.RelativeY]
//
// # Configuration
//
// Both components accept a config struct; zero values fall back to
// defaults:
//
//	config := layout.DefaultMergerConfig()
//	config.YTolerance = 5.0
//	merger := layout.NewMergerWithConfig(config)
package layout
