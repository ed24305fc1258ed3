// Package adapters provides Context implementations over plain Go values,
// JSON and YAML, grounded on the maps-and-lists, json and yaml Context
// adapters of the reference implementation this engine was ported from.
package adapters

import (
	"fmt"
	"strconv"

	"github.com/dstq/mustache"
)

// Lambda0 is a value-position lambda: a property whose value is computed
// on access and interpolated like any other scalar.
type Lambda0 func() string

// Lambda1 is a section-position lambda: it receives the section's literal,
// unrendered body text and returns replacement template text, which is
// itself recompiled and rendered against the enclosing scope.
type Lambda1 func(text string) string

// mapsContext wraps a native Go value (nil, bool, string, a numeric type,
// map[string]interface{}, []interface{}, Lambda0 or Lambda1) as a Context.
type mapsContext struct {
	val  interface{}
	loc  *mustache.Location
	memo *string
}

// FromGoValue wraps v as the root Context of a render.
func FromGoValue(v interface{}) mustache.Context {
	return &mapsContext{val: v}
}

func (c *mapsContext) Child(name string, loc *mustache.Location) mustache.Context {
	m, ok := c.val.(map[string]interface{})
	if !ok {
		return nil
	}
	v, ok := m[name]
	if !ok {
		return nil
	}
	return &mapsContext{val: v, loc: loc}
}

func (c *mapsContext) Children() []mustache.Context {
	seq, ok := c.val.([]interface{})
	if !ok {
		return nil
	}
	out := make([]mustache.Context, len(seq))
	for i, e := range seq {
		out[i] = &mapsContext{val: e}
	}
	return out
}

func (c *mapsContext) Value() mustache.Value {
	switch v := c.val.(type) {
	case nil:
		return mustache.TextValue("")
	case bool:
		return mustache.TextValue(strconv.FormatBool(v))
	case string:
		return mustache.TextValue(v)
	case Lambda0:
		return c.lambdaValue(func() string { return v() })
	case Lambda1:
		text := ""
		if c.loc != nil {
			text = c.loc.Text
		}
		return c.lambdaValue(func() string { return v(text) })
	case map[string]interface{}, []interface{}:
		return mustache.TextValue("")
	default:
		return mustache.TextValue(fmt.Sprint(v))
	}
}

// lambdaValue memoizes a lambda's evaluation on this Context instance:
// repeated Value calls on the same instance return the same text. Child
// and Children build a new instance on every lookup, so each lookup of a
// lambda (for example two {{name}} tags in one render) evaluates it again.
func (c *mapsContext) lambdaValue(eval func() string) mustache.Value {
	if c.memo == nil {
		s := eval()
		c.memo = &s
	}
	return mustache.LambdaValue(*c.memo)
}

// IsFalsy treats only nil and boolean false as falsy; numbers, empty
// strings and empty sequences are truthy.
func (c *mapsContext) IsFalsy() bool {
	if c.val == nil {
		return true
	}
	if b, ok := c.val.(bool); ok {
		return !b
	}
	return false
}

var _ mustache.Context = (*mapsContext)(nil)
