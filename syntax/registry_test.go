package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#3498DB")
	require.NoError(t, err)
	require.Equal(t, RGB{R: 0x34, G: 0x98, B: 0xdb}, c)
	require.Equal(t, "#3498db", c.Hex())

	short, err := ParseRGB("#f0a")
	require.NoError(t, err)
	require.Equal(t, RGB{R: 0xff, G: 0x00, B: 0xaa}, short)

	for _, bad := range []string{"", "3498DB", "#12345", "#zzzzzz"} {
		_, err := ParseRGB(bad)
		require.ErrorIs(t, err, ErrInvalidColor, "input %q", bad)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	kw, ok := r.Lookup(CategoryKeyword)
	require.True(t, ok)
	require.Equal(t, "#3498db", kw.Color.Hex())
	require.False(t, kw.Bold)

	class, ok := r.Lookup(CategoryClassName)
	require.True(t, ok)
	require.True(t, class.Bold)

	comment, ok := r.Lookup(CategoryComment)
	require.True(t, ok)
	require.True(t, comment.Italic)

	_, ok = r.Lookup(CategoryTemplateBracket)
	require.False(t, ok, "template brackets have no style override")
	_, ok = r.Lookup(CategoryNone)
	require.False(t, ok)
}

func TestNewRegistry_Overrides(t *testing.T) {
	r, err := NewRegistry(nil, map[string]StyleSpec{
		"keyword":          {Color: "#ffffff", Bold: true},
		"comment":          {Color: ""},
		"template_bracket": {Color: "#010203"},
	})
	require.NoError(t, err)

	kw, ok := r.Lookup(CategoryKeyword)
	require.True(t, ok)
	require.Equal(t, StyleAttribute{Color: RGB{255, 255, 255}, Bold: true}, kw)

	_, ok = r.Lookup(CategoryComment)
	require.False(t, ok)

	tb, ok := r.Lookup(CategoryTemplateBracket)
	require.True(t, ok)
	require.Equal(t, "#010203", tb.Color.Hex())

	// Untouched categories keep the default.
	str, ok := r.Lookup(CategoryString)
	require.True(t, ok)
	require.Equal(t, "#f1c413", str.Color.Hex())

	// The base registry is not modified.
	base := DefaultRegistry()
	layered, err := NewRegistry(base, map[string]StyleSpec{"string": {Color: "#000000"}})
	require.NoError(t, err)
	s1, _ := base.Lookup(CategoryString)
	s2, _ := layered.Lookup(CategoryString)
	require.NotEqual(t, s1, s2)
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(nil, map[string]StyleSpec{"bogus": {Color: "#ffffff"}})
	require.ErrorIs(t, err, ErrUnknownCategory)

	_, err = NewRegistry(nil, map[string]StyleSpec{"keyword": {Color: "blue"}})
	require.ErrorIs(t, err, ErrInvalidColor)
}

func TestRegistry_SpecsRoundTrip(t *testing.T) {
	r := DefaultRegistry()
	again, err := NewRegistry(&Registry{}, r.Specs())
	require.NoError(t, err)
	for _, c := range Categories() {
		a1, ok1 := r.Lookup(c)
		a2, ok2 := again.Lookup(c)
		require.Equal(t, ok1, ok2, c.String())
		require.Equal(t, a1, a2, c.String())
	}
}

func TestRegistry_NilLookup(t *testing.T) {
	var r *Registry
	_, ok := r.Lookup(CategoryKeyword)
	require.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCategory(" Basic_Type ")
	require.NoError(t, err)
	require.Equal(t, CategoryBasicType, got)

	_, err = ParseCategory("keywords")
	require.ErrorIs(t, err, ErrUnknownCategory)
	require.Equal(t, "category(200)", Category(200).String())
}
