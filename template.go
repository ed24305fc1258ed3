// Package mustache compiles Mustache 1.x templates into a Segment tree and
// renders that tree against a pluggable Context adapter. It covers core
// Mustache (comments, interpolation, sections, inverted sections,
// delimiter changes, partials) plus template inheritance, dynamic names,
// sequence-check sections and lambdas.
package mustache

import (
	"io"
	"io/ioutil"
	"strings"
)

// defaultMaxPartialDepth bounds partial/parent recursion so that a
// self-referential (or mutually-recursive, via a dynamic name only
// discovered at render time) partial cannot recurse forever.
const defaultMaxPartialDepth = 100

// Compiler builds a Template from source, following the teacher's
// functional-builder convention: New() returns a Compiler with sane
// defaults, and each With... method mutates and returns the same
// Compiler so calls chain.
type Compiler struct {
	escape          EscapeMode
	errorOnMissing  bool
	maxPartialDepth int
	partials        PartialProvider
}

// New returns a Compiler configured with HTML escaping, a partial
// recursion depth of 100, and no partial provider.
func New() *Compiler {
	return &Compiler{
		escape:          EscapeHTML,
		maxPartialDepth: defaultMaxPartialDepth,
	}
}

// WithEscapeMode sets how {{value}} interpolation is encoded.
func (c *Compiler) WithEscapeMode(mode EscapeMode) *Compiler {
	c.escape = mode
	return c
}

// WithErrorOnMissing makes an unresolved {{value}}/{{{value}}} name a
// render error instead of the default silent empty-string substitution.
// Section and partial misses are always silent regardless of this
// setting.
func (c *Compiler) WithErrorOnMissing(v bool) *Compiler {
	c.errorOnMissing = v
	return c
}

// WithMaxPartialDepth bounds partial/parent recursion depth.
func (c *Compiler) WithMaxPartialDepth(n int) *Compiler {
	c.maxPartialDepth = n
	return c
}

// WithPartials supplies the provider used to resolve {{>name}}, {{<name}},
// {{>*name}} and {{<*name}} tags.
func (c *Compiler) WithPartials(p PartialProvider) *Compiler {
	c.partials = p
	return c
}

// CompileString compiles src into a Template. If a partial provider was
// configured, every statically-named partial reachable from src is
// fetched and compiled too, and a failure among them is returned here
// rather than discovered mid-render.
func (c *Compiler) CompileString(src string) (*Template, error) {
	segs, err := parse(src)
	if err != nil {
		return nil, err
	}

	t := &Template{
		segs:            segs,
		escape:          c.escape,
		errorOnMissing:  c.errorOnMissing,
		maxPartialDepth: c.maxPartialDepth,
	}

	if c.partials != nil {
		store, err := newPartialStore(c.partials, [][]segment{segs})
		if err != nil {
			return nil, err
		}
		t.store = store
	}

	return t, nil
}

// CompileFile reads path and compiles its contents.
func (c *Compiler) CompileFile(path string) (*Template, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.CompileString(string(data))
}

// Template is a compiled Mustache template: a Segment tree plus the
// rendering policy it was compiled with.
type Template struct {
	segs            []segment
	escape          EscapeMode
	errorOnMissing  bool
	maxPartialDepth int
	store           *PartialStore
}

// Render walks the Segment tree against ctx and returns the result.
func (t *Template) Render(ctx Context) (string, error) {
	var buf strings.Builder
	env := &renderEnv{
		out:            &buf,
		stack:          newStack(ctx),
		escape:         t.escape,
		partials:       t.store,
		maxDepth:       t.maxPartialDepth,
		errorOnMissing: t.errorOnMissing,
	}
	if err := renderAll(t.segs, env); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FRender is Render, writing directly to w.
func (t *Template) FRender(w io.Writer, ctx Context) error {
	s, err := t.Render(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// CompileString compiles src with default options and no partial support.
func CompileString(src string) (*Template, error) {
	return New().CompileString(src)
}

// CompileFile compiles the template at path with default options and no
// partial support.
func CompileFile(path string) (*Template, error) {
	return New().CompileFile(path)
}

// Render compiles src and renders it against ctx in one step.
func Render(src string, ctx Context) (string, error) {
	t, err := CompileString(src)
	if err != nil {
		return "", err
	}
	return t.Render(ctx)
}
