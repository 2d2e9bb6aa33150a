// Package span defines the input boundary of the outline engine: the
// [TextSpan] record produced by an external page decoder, and the
// [Source] interface through which decoders hand pages over.
//
// Decoding a document format into spans is explicitly out of scope for
// this library. Any decoder that can report text runs with a font size,
// a font name, and a bounding box can drive the engine; the spanio,
// htmlspan, and markspan packages provide ready-made sources.
package span
