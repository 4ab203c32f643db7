package syntax

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Rule assigns Category to every match of Pattern.
//
// Pattern uses .NET-style syntax (lookbehind and lookahead are available).
type Rule struct {
	Name     string
	Pattern  string
	Category Category
}

// Vocabulary of the edited language.
var (
	Keywords = []string{
		"char", "class", "const",
		"double", "enum", "explicit",
		"friend", "inline", "int",
		"long", "namespace", "operator",
		"private", "protected", "public",
		"short", "signals", "signed",
		"slots", "static", "struct",
		"template", "typedef", "typename",
		"union", "unsigned", "virtual",
		"void", "volatile", "bool",
	}

	BasicTypes = []string{
		"int", "float", "double", "bool",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"size_t",
	}

	Constants = []string{"true", "false"}

	Operators = []string{
		"=",
		"==", "!=", "<", "<=", ">", ">=",
		"+", "-", "*", "/", "//", "%", "**",
		"+=", "-=", "*=", "/=", "%=",
		"^", "|", "&", "~", ">>", "<<",
	}

	Braces = []string{"{", "}", "(", ")", "[", "]"}
)

// DefaultRules returns the rule list in application order. Later rules win
// where matches overlap.
//
// Words that are both keywords and basic types (int, double, bool) stay
// keywords: the basic type rule skips them.
func DefaultRules() []Rule {
	types := without(BasicTypes, Keywords)
	notKeyword := `(?!(?:` + alternation(Keywords) + `)\b)`

	return []Rule{
		{Name: "keyword", Pattern: wordAlternation(Keywords), Category: CategoryKeyword},
		{Name: "constant", Pattern: wordAlternation(Constants), Category: CategoryConstant},
		{Name: "number", Pattern: `\b(?:0[xX][0-9A-Fa-f]+|[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?)[uUlLfF]*\b`, Category: CategoryNumber},
		{Name: "basic_type", Pattern: wordAlternation(types), Category: CategoryBasicType},
		{Name: "operator", Pattern: alternation(Operators), Category: CategoryOperator},
		{Name: "brace", Pattern: alternation(Braces), Category: CategoryBrace},
		{Name: "this", Pattern: `\bthis\b`, Category: CategoryIdentifierThis},
		{Name: "class_decl", Pattern: `(?<=\b(?:class|struct)\s+)` + notKeyword + `[A-Za-z_][A-Za-z_0-9]*`, Category: CategoryClassName},
		{Name: "class_base", Pattern: `(?<=\b(?:public|protected)\s+)` + notKeyword + `[A-Za-z_][A-Za-z_0-9]*`, Category: CategoryClassName},
		// Greedy: two literals on one line merge into one span.
		{Name: "string", Pattern: `".*"`, Category: CategoryString},
		{Name: "function_call", Pattern: `\b[A-Za-z0-9_]+(?=\()`, Category: CategoryFunctionName},
		{Name: "template_open", Pattern: `(?<=[A-Za-z])<(?=.+>)`, Category: CategoryTemplateBracket},
		{Name: "template_close", Pattern: `(?<=[A-Za-z0-9_])>`, Category: CategoryTemplateBracket},
		{Name: "macro", Pattern: `(?<=\s)[A-Z_]{2,}`, Category: CategoryMacro},
		{Name: "line_comment", Pattern: `//.*`, Category: CategoryComment},
	}
}

// alternation builds a non-capturing alternation of literal tokens, longest
// first so that "<<=" is preferred over "<".
func alternation(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	escaped := make([]string, len(sorted))
	for i, t := range sorted {
		escaped[i] = regexp2.Escape(t)
	}
	return `(?:` + strings.Join(escaped, "|") + `)`
}

func wordAlternation(words []string) string {
	return `\b` + alternation(words) + `\b`
}

func without(words, exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		skip[w] = struct{}{}
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := skip[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
