// Package outline infers a document title and a hierarchical outline
// from merged text lines and their layout statistics.
//
// Nothing in this package reads document content semantically. Every
// decision is driven by geometry and typography: font size relative to
// the document and page distributions, boldness, vertical position,
// casing shape, section numbering, and punctuation density.
//
// # Pipeline
//
// The [Extractor] orchestrates the full pipeline:
//
//	extractor := outline.NewExtractor()
//	result := extractor.Extract(lines, structure)
//
// which runs, in order:
//
//   - [TitleExtractor] - scores every line for title likelihood and
//     assembles the title, joining a continuation line when a strong
//     second candidate sits just below the best one
//   - [HeadingClassifier] - scores every remaining line and maps the
//     score to H1..H4 through [HeadingThresholds]
//   - [Filter] - drops dates, names, addresses, bullets, and other
//     non-heading noise, promotes prominent ALL-CAPS headings to H1,
//     deduplicates, and applies the final quality gate
//   - [PageValidator] - confirms each heading's page by searching the
//     document's lines, relocating headings recorded on the wrong page
//   - [CapOutline] - truncates overlong outlines by (page, level)
//     priority
//
// # Scoring
//
// Both scorers are additive over independent feature groups. Groups
// marked as tiers award only their highest matching row; all other
// features accumulate. The tables live in [TitleWeights] and
// [HeadingWeights] and can be tuned per document corpus:
//
//	config := outline.DefaultExtractorConfig()
//	config.Heading.Thresholds.H1 = 110
//	config.Heading.Weights.Bold = 40
//	extractor := outline.NewExtractorWithConfig(config)
//
// # Document Archetypes
//
// Three whole-document archetypes bypass scored extraction, detected by
// [Legacy] from the document's joined lowercase text:
//
//   - forms produce an empty outline: field labels are not structure
//   - brochures and posters produce exactly one document-level H1,
//     located by an ordered chain of strategies ending in a fixed
//     fallback literal
//
// Archetype headings carry [model.DocumentLevelPage] as their page.
package outline
