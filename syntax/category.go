package syntax

import (
	"fmt"
	"strings"
)

// Category is the stylable class of a character range.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryOperator
	CategoryBrace
	CategoryBasicType
	CategoryClassName
	CategoryFunctionName
	CategoryString
	CategoryComment
	CategoryMacro
	CategoryConstant
	CategoryTemplateBracket
	CategoryIdentifierThis
	CategoryNumber

	categoryCount
)

var categoryNames = [...]string{
	CategoryNone:            "none",
	CategoryKeyword:         "keyword",
	CategoryOperator:        "operator",
	CategoryBrace:           "brace",
	CategoryBasicType:       "basic_type",
	CategoryClassName:       "class_name",
	CategoryFunctionName:    "function_name",
	CategoryString:          "string",
	CategoryComment:         "comment",
	CategoryMacro:           "macro",
	CategoryConstant:        "constant",
	CategoryTemplateBracket: "template_bracket",
	CategoryIdentifierThis:  "identifier_this",
	CategoryNumber:          "number",
}

func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return c < categoryCount }

// ParseCategory returns the category named s (case-insensitive).
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return Category(c), nil
		}
	}
	return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := CategoryNone; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}
