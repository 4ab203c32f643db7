package syntax

// BlockState is the tokenizer state carried from the end of one line to the
// start of the next.
type BlockState uint8

const (
	StateNormal BlockState = iota
	StateInBlockComment
)

func (s BlockState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateInBlockComment:
		return "in_block_comment"
	default:
		return "unknown"
	}
}

// Span styles Length runes of one line starting at rune offset Start.
type Span struct {
	Start    int
	Length   int
	Category Category
}

// End returns the rune offset one past the span.
func (s Span) End() int { return s.Start + s.Length }

// Overlay merges span layers for a line of lineLen runes. Layers are applied
// in order and a later layer overwrites earlier ones wherever they overlap.
// Spans are clipped to [0, lineLen); CategoryNone erases. The result is
// sorted, non-overlapping, and adjacent runs of one category are joined.
func Overlay(lineLen int, layers ...[]Span) []Span {
	if lineLen <= 0 {
		return nil
	}
	paint := make([]Category, lineLen)
	for _, layer := range layers {
		for _, sp := range layer {
			start := max(sp.Start, 0)
			end := min(sp.End(), lineLen)
			for i := start; i < end; i++ {
				paint[i] = sp.Category
			}
		}
	}
	return coalesce(paint)
}

func coalesce(paint []Category) []Span {
	var out []Span
	for i := 0; i < len(paint); {
		c := paint[i]
		j := i + 1
		for j < len(paint) && paint[j] == c {
			j++
		}
		if c != CategoryNone {
			out = append(out, Span{Start: i, Length: j - i, Category: c})
		}
		i = j
	}
	return out
}
