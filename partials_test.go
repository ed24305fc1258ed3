package mustache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticProviderGet(t *testing.T) {
	sp := &StaticProvider{Partials: map[string]string{"a": "A"}}
	data, err := sp.Get("a")
	assert.NoError(t, err)
	assert.Equal(t, "A", data)

	data, err = sp.Get("missing")
	assert.NoError(t, err)
	assert.Equal(t, "", data)
}

func TestFileProviderGet(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "greet.mustache"), []byte("Hi {{name}}!"), 0o644))

	fp := &FileProvider{Paths: []string{dir}}
	data, err := fp.Get("greet")
	assert.NoError(t, err)
	assert.Equal(t, "Hi {{name}}!", data)

	data, err = fp.Get("nope")
	assert.NoError(t, err)
	assert.Equal(t, "", data)
}

func TestFileProviderRejectsUnsafeNames(t *testing.T) {
	fp := &FileProvider{}
	_, err := fp.Get("../etc/passwd")
	assert.Error(t, err)
}

func TestPartialStoreCompileErrorIsAtomic(t *testing.T) {
	_, err := New().
		WithPartials(&StaticProvider{Partials: map[string]string{"broken": "{{#unterminated"}}).
		CompileString("{{>broken}}")
	assert.Error(t, err)
}

func TestPartialStoreSelfReferenceDoesNotRecurseForever(t *testing.T) {
	tmpl, err := New().
		WithMaxPartialDepth(5).
		WithPartials(&StaticProvider{Partials: map[string]string{"loop": "x{{>loop}}"}}).
		CompileString("{{>loop}}")
	assert.NoError(t, err)
	out, err := tmpl.Render(newSpecContext(map[string]interface{}{}))
	assert.NoError(t, err)
	assert.Equal(t, "xxxxx", out)
}
