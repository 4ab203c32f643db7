package syntax

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	blockCommentOpen  = "/*"
	blockCommentClose = "*/"
	lineCommentOpen   = "//"
)

// Engine converts one line plus its incoming BlockState into spans and the
// outgoing BlockState. It is safe for concurrent use.
type Engine struct {
	rules    []Rule
	compiled []*regexp2.Regexp
}

type engineOptions struct {
	rules   []Rule
	timeout time.Duration
}

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

// WithRules replaces the default rule list.
func WithRules(rules []Rule) EngineOption {
	return func(o *engineOptions) { o.rules = append([]Rule(nil), rules...) }
}

// WithMatchTimeout bounds the time spent by a single rule on a single line.
// A rule that times out contributes no spans for that line.
func WithMatchTimeout(d time.Duration) EngineOption {
	return func(o *engineOptions) { o.timeout = d }
}

// NewEngine compiles the rule list.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	o := engineOptions{rules: DefaultRules()}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		rules:    o.rules,
		compiled: make([]*regexp2.Regexp, 0, len(o.rules)),
	}
	for _, r := range o.rules {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrUnknownCategory)
		}
		re, err := regexp2.Compile(r.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w: %v", r.Name, ErrInvalidPattern, err)
		}
		if o.timeout > 0 {
			re.MatchTimeout = o.timeout
		}
		e.compiled = append(e.compiled, re)
	}
	return e, nil
}

// DefaultEngine returns an engine with DefaultRules.
func DefaultEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err) // default rules are static
	}
	return e
}

// Rules returns a copy of the rule list in application order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Highlight tokenizes line starting in state in. Spans use rune offsets,
// never overlap, and never extend past the line.
func (e *Engine) Highlight(line string, in BlockState) ([]Span, BlockState) {
	runes := []rune(line)
	comments, out := scanBlockComments(runes, in)

	// Rules never see text inside block comments. The mask rune is neither
	// space nor word so lookarounds cannot match against it.
	masked := runes
	if len(comments) > 0 {
		masked = append([]rune(nil), runes...)
		for _, c := range comments {
			for i := c.Start; i < c.End(); i++ {
				masked[i] = commentMask
			}
		}
	}

	layers := make([][]Span, 0, len(e.compiled)+1)
	for i, re := range e.compiled {
		layers = append(layers, matchSpans(re, masked, e.rules[i].Category))
	}
	layers = append(layers, comments)

	return Overlay(len(runes), layers...), out
}

const commentMask = '\x00'

func matchSpans(re *regexp2.Regexp, text []rune, c Category) []Span {
	var spans []Span
	m, err := re.FindRunesMatch(text)
	for err == nil && m != nil {
		if m.Length > 0 {
			spans = append(spans, Span{Start: m.Index, Length: m.Length, Category: c})
		}
		m, err = re.FindNextMatch(m)
	}
	// A timed out rule keeps no partial result.
	if err != nil {
		return nil
	}
	return spans
}

// scanBlockComments returns the block comment ranges of one line and the
// state at its end. A line comment outside a block comment ends the scan.
func scanBlockComments(line []rune, in BlockState) ([]Span, BlockState) {
	var out []Span
	state := in
	from, start := 0, 0

	for {
		if state == StateInBlockComment {
			end := indexRunes(line, from, blockCommentClose)
			if end < 0 {
				if start < len(line) {
					out = append(out, Span{Start: start, Length: len(line) - start, Category: CategoryComment})
				}
				return out, StateInBlockComment
			}
			stop := end + len(blockCommentClose)
			out = append(out, Span{Start: start, Length: stop - start, Category: CategoryComment})
			from, state = stop, StateNormal
		}

		open := indexRunes(line, from, blockCommentOpen)
		if open < 0 {
			return out, StateNormal
		}
		if lc := indexRunes(line, from, lineCommentOpen); lc >= 0 && lc < open {
			return out, StateNormal
		}
		start, from, state = open, open+len(blockCommentOpen), StateInBlockComment
	}
}

func indexRunes(line []rune, from int, needle string) int {
	n := []rune(needle)
	for i := from; i+len(n) <= len(line); i++ {
		match := true
		for j := range n {
			if line[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
