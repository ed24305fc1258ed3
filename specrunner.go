package mustache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

// specSuite and specCase mirror the shape of a Mustache spec YAML file:
// a top-level "tests" list of named cases, each with a template, a data
// fixture, an optional set of partials, and the expected render.
type specSuite struct {
	Tests []specCase `yaml:"tests"`
}

type specCase struct {
	Name     string                 `yaml:"name"`
	Desc     string                 `yaml:"desc"`
	Data     map[string]interface{} `yaml:"data"`
	Template string                 `yaml:"template"`
	Expected string                 `yaml:"expected"`
	Partials map[string]string      `yaml:"partials"`
}

// SpecResult is the outcome of running one spec case.
type SpecResult struct {
	File   string
	Name   string
	Passed bool
	Got    string
	Err    error
}

// RunSpecDir globs dir for *.yml suite files, runs every case in each,
// and reports one SpecResult per case. It does not fail the whole run
// when an individual case errors; that error is attached to its result.
func RunSpecDir(dir string) ([]SpecResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, err
	}
	var results []SpecResult
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		var suite specSuite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		file := filepath.Base(p)
		for _, tc := range suite.Tests {
			results = append(results, runSpecCase(file, tc))
		}
	}
	return results, nil
}

func runSpecCase(file string, tc specCase) SpecResult {
	c := New()
	if len(tc.Partials) > 0 {
		c = c.WithPartials(&StaticProvider{Partials: tc.Partials})
	}
	tmpl, err := c.CompileString(tc.Template)
	if err != nil {
		return SpecResult{File: file, Name: tc.Name, Err: err}
	}
	ctx := newSpecContext(normalizeSpecValue(tc.Data))
	got, err := tmpl.Render(ctx)
	if err != nil {
		return SpecResult{File: file, Name: tc.Name, Err: err}
	}
	return SpecResult{File: file, Name: tc.Name, Passed: got == tc.Expected, Got: got}
}

// specContext is a minimal Context over decoded YAML data. It duplicates
// adapters.FromGoValue's logic rather than importing the adapters package,
// which itself imports this package — the spec runner lives here (C9) and
// cannot reach across that cycle.
type specContext struct {
	val interface{}
}

func newSpecContext(v interface{}) Context {
	return &specContext{val: v}
}

func (c *specContext) Child(name string, loc *Location) Context {
	m, ok := c.val.(map[string]interface{})
	if !ok {
		return nil
	}
	v, ok := m[name]
	if !ok {
		return nil
	}
	return &specContext{val: v}
}

func (c *specContext) Children() []Context {
	seq, ok := c.val.([]interface{})
	if !ok {
		return nil
	}
	out := make([]Context, len(seq))
	for i, e := range seq {
		out[i] = &specContext{val: e}
	}
	return out
}

func (c *specContext) Value() Value {
	switch v := c.val.(type) {
	case nil:
		return TextValue("")
	case bool:
		return TextValue(strconv.FormatBool(v))
	case string:
		return TextValue(v)
	case map[string]interface{}, []interface{}:
		return TextValue("")
	default:
		return TextValue(fmt.Sprint(v))
	}
}

func (c *specContext) IsFalsy() bool {
	if c.val == nil {
		return true
	}
	if b, ok := c.val.(bool); ok {
		return !b
	}
	return false
}

var _ Context = (*specContext)(nil)

// normalizeSpecValue converts yaml.v2's map[interface{}]interface{}
// mapping representation (used for every nested mapping, regardless of
// the field type it's decoded into) into map[string]interface{}, which
// specContext.Child expects.
func normalizeSpecValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeSpecValue(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeSpecValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeSpecValue(e)
		}
		return out
	default:
		return v
	}
}
