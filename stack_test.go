package mustache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// leafContext is a tiny hand-rolled Context used to exercise stack
// resolution rules directly, without going through an adapter.
type leafContext struct {
	fields map[string]*leafContext
	elems  []*leafContext
	value  string
	falsy  bool
}

func (c *leafContext) Child(name string, loc *Location) Context {
	child, ok := c.fields[name]
	if !ok {
		return nil
	}
	return child
}

func (c *leafContext) Children() []Context {
	if c.elems == nil {
		return nil
	}
	out := make([]Context, len(c.elems))
	for i, e := range c.elems {
		out[i] = e
	}
	return out
}

func (c *leafContext) Value() Value { return TextValue(c.value) }
func (c *leafContext) IsFalsy() bool { return c.falsy }

func leaf(v string) *leafContext { return &leafContext{value: v} }

func TestStackSimpleNameFallsBackThroughFrames(t *testing.T) {
	outer := &leafContext{fields: map[string]*leafContext{
		"name":  leaf("outer-name"),
		"inner": {fields: map[string]*leafContext{}},
	}}
	root := &leafContext{fields: map[string]*leafContext{"outer": outer}}

	s := newStack(root)
	assert.True(t, s.push("outer", nil))
	assert.True(t, s.push("inner", nil))

	// "inner" has no "name" field; simple-name resolution must fall back
	// to the "outer" frame above it.
	assert.True(t, s.push("name", nil))
	assert.Equal(t, "outer-name", s.current().Value().Text)
}

func TestStackDottedNameDoesNotFallBack(t *testing.T) {
	outer := &leafContext{fields: map[string]*leafContext{"name": leaf("outer-name")}}
	a := &leafContext{fields: map[string]*leafContext{}} // a.name does not exist
	root := &leafContext{fields: map[string]*leafContext{"outer": outer, "a": a}}

	s := newStack(root)
	assert.True(t, s.push("outer", nil))
	start := s.len()

	// a.name: the head "a" is looked up on the current frame ("outer") only,
	// where it is absent; dotted resolution must neither fall back to root
	// for "a" nor resolve to outer's "name".
	ok := s.push("a.name", nil)
	assert.False(t, ok)
	assert.Equal(t, start, s.len())
}

func TestStackDotPushesSequence(t *testing.T) {
	root := &leafContext{elems: []*leafContext{leaf("x"), leaf("y")}}
	s := newStack(root)
	assert.True(t, s.push(".", nil))
	assert.True(t, s.inSequence())
	assert.Equal(t, "x", s.current().Value().Text)
	assert.True(t, s.next())
	assert.Equal(t, "y", s.current().Value().Text)
	assert.False(t, s.next())
}

func TestStackGetTruncatesBack(t *testing.T) {
	root := &leafContext{fields: map[string]*leafContext{"name": leaf("v")}}
	s := newStack(root)
	start := s.len()
	v, ok := s.get("name")
	assert.True(t, ok)
	assert.Equal(t, "v", v.Text)
	assert.Equal(t, start, s.len())

	_, ok = s.get("missing")
	assert.False(t, ok)
	assert.Equal(t, start, s.len())
}

func TestStackIsFalsy(t *testing.T) {
	s := newStack(&leafContext{falsy: true})
	assert.True(t, s.isFalsy())
}
