// Package syntax tokenizes single lines of C++-flavored source into
// categorized style spans.
//
// An Engine runs an ordered list of pattern rules over a line and merges
// their matches with a last-rule-wins policy, then paints block comments on
// top. Block comments are the only construct that crosses lines: the
// BlockState returned for one line is the incoming state of the next.
//
// A Registry maps categories to visual attributes. Both Engine and Registry
// are immutable after construction and may be shared freely.
package syntax
