package simple

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dstq/mustache"
	"github.com/dstq/mustache/adapters"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out, err := Render("Hi {{name}}!", map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}

func TestRenderPartials(t *testing.T) {
	out, err := RenderPartials(
		"{{>greet}}",
		&mustache.StaticProvider{Partials: map[string]string{"greet": "Hi {{name}}!"}},
		map[string]interface{}{"name": "Ada"},
	)
	assert.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}

func TestParseStringPartialsAndRender(t *testing.T) {
	tmpl, err := ParseStringPartials(
		"{{>greet}}",
		&mustache.StaticProvider{Partials: map[string]string{"greet": "Hi {{name}}!"}},
	)
	assert.NoError(t, err)
	out, err := tmpl.Render(adapters.FromGoValue(map[string]interface{}{"name": "Ada"}))
	assert.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.mustache")
	assert.NoError(t, os.WriteFile(main, []byte("{{>greet}}"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "greet.mustache"), []byte("Hi {{name}}!"), 0o644))

	out, err := RenderFile(main, map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}

func TestParseFileResolvesPartialsFromItsOwnDirectory(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.mustache")
	assert.NoError(t, os.WriteFile(main, []byte("{{>greet}}"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "greet.mustache"), []byte("Hi {{name}}!"), 0o644))

	tmpl, err := ParseFile(main)
	assert.NoError(t, err)
	out, err := tmpl.Render(adapters.FromGoValue(map[string]interface{}{"name": "Ada"}))
	assert.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}
