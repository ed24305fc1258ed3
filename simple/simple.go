// Package simple is a convenience wrapper over the mustache package's
// Compiler/Template API, in the spirit of the teacher's old v1
// compatibility shim: one-shot ParseString/ParseFile/Render helpers that
// take a plain Go value (map, slice, struct field access is not
// supported — wrap your data with adapters.FromGoValue's accepted shapes)
// instead of requiring callers to build a Context by hand.
//
// The old shim's RenderInLayout is not carried forward: this engine's
// Inheritance module ({{<parent}}...{{$block}}...{{/parent}}) is the
// direct, better-specified replacement for ad hoc layout wrapping.
package simple

import (
	"os"
	"path"

	"github.com/dstq/mustache"
	"github.com/dstq/mustache/adapters"
)

// ParseString compiles a template string, resolving any partials it needs
// against the current working directory.
func ParseString(data string) (*mustache.Template, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return ParseStringPartials(data, &mustache.FileProvider{Paths: []string{cwd}})
}

// ParseStringPartials compiles a template string, resolving partials
// against the given provider.
func ParseStringPartials(data string, partials mustache.PartialProvider) (*mustache.Template, error) {
	return mustache.New().WithPartials(partials).CompileString(data)
}

// ParseFile loads and compiles a template from a file, resolving any
// partials it needs against the file's own directory.
func ParseFile(filename string) (*mustache.Template, error) {
	dirname, _ := path.Split(filename)
	return ParseFilePartials(filename, &mustache.FileProvider{Paths: []string{dirname}})
}

// ParseFilePartials loads and compiles a template from a file, resolving
// partials against the given provider.
func ParseFilePartials(filename string, partials mustache.PartialProvider) (*mustache.Template, error) {
	return mustache.New().WithPartials(partials).CompileFile(filename)
}

// Render compiles data and renders it against value, which is wrapped
// with adapters.FromGoValue.
func Render(data string, value interface{}) (string, error) {
	return RenderPartials(data, nil, value)
}

// RenderPartials compiles data, resolving partials against the given
// provider (if non-nil), and renders it against value.
func RenderPartials(data string, partials mustache.PartialProvider, value interface{}) (string, error) {
	c := mustache.New()
	if partials != nil {
		c = c.WithPartials(partials)
	}
	tmpl, err := c.CompileString(data)
	if err != nil {
		return "", err
	}
	return tmpl.Render(adapters.FromGoValue(value))
}

// RenderFile loads and compiles a template from a file and renders it
// against value.
func RenderFile(filename string, value interface{}) (string, error) {
	tmpl, err := ParseFile(filename)
	if err != nil {
		return "", err
	}
	return tmpl.Render(adapters.FromGoValue(value))
}
