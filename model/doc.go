// Package model defines the user-facing data structures for document
// outline inference.
//
// The two halves of the package are the geometric primitives consumed on
// the way in and the outline types produced on the way out:
//
//   - [BBox] - bounding box in page reading coordinates (Y grows downward)
//   - [HeadingLevel] - outline depth, H1 through H4
//   - [Heading] - one outline entry: level, cleaned text, page number
//   - [Result] - the extraction output: title plus ordered outline
//
// A [Heading] whose Page equals [DocumentLevelPage] applies to the whole
// document rather than a single page; archetype classification produces
// such entries.
//
// Result marshals to the interchange form expected by downstream
// consumers:
//
//	{
//	  "title": "Annual Report 2023  ",
//	  "outline": [
//	    {"level": "H1", "text": "Introduction", "page": 1}
//	  ]
//	}
package model
