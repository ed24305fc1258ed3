package mustache

import "testing"

import "github.com/stretchr/testify/assert"

func TestSpanTag(t *testing.T) {
	tag, after, ok := spanTag("{{name}} rest", "{{", "}}")
	assert.True(t, ok)
	assert.Equal(t, "name", tag)
	assert.Equal(t, "{{name}}", "{{name}} rest"[:after])

	tag, after, ok = spanTag("{{{name}}} rest", "{{", "}}")
	assert.True(t, ok)
	assert.Equal(t, "{name}", tag)
	assert.Equal(t, "{{{name}}}", "{{{name}}} rest"[:after])

	_, _, ok = spanTag("{{unterminated", "{{", "}}")
	assert.False(t, ok)
}

func TestSpanStandaloneSingleTag(t *testing.T) {
	n := spanStandalone("   {{#a}}  \nbody", "{{", "}}")
	assert.Equal(t, len("   {{#a}}  \n"), n)
}

func TestSpanStandaloneMultiTag(t *testing.T) {
	// Two strippable tags sharing a standalone line, with whitespace both
	// between and around them, must be consumed in full.
	s := "  {{# a }}  {{^x}}  \nbody"
	n := spanStandalone(s, "{{", "}}")
	assert.Equal(t, len(s)-len("body"), n)
}

func TestSpanStandaloneRejectsInterpolation(t *testing.T) {
	n := spanStandalone("  {{value}}  \nbody", "{{", "}}")
	assert.Equal(t, 0, n)
}

func TestSpanStandaloneAtEOF(t *testing.T) {
	n := spanStandalone("  {{/a}}", "{{", "}}")
	assert.Equal(t, len("  {{/a}}"), n)
}
