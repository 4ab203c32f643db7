// Package buffer implements the document model edited by cppedit: rune lines,
// one cursor, an optional selection, and an undo history.
//
// Coordinates are 0-based (Row, Col) in runes.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// Every effective mutation is recorded as a Change so that line-oriented
// consumers (the highlighter) can tell which rows were replaced.
package buffer
