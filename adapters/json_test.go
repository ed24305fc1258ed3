package adapters

import (
	"testing"

	"github.com/dstq/mustache"
	"github.com/stretchr/testify/assert"
)

func TestFromJSONRendersNestedValues(t *testing.T) {
	ctx, err := FromJSON([]byte(`{"name":"Ada","tags":["x","y"]}`))
	assert.NoError(t, err)
	out, err := mustache.Render("{{name}}: {{#tags}}{{.}} {{/tags}}", ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Ada: x y ", out)
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	_, err := FromJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFromJSONNullIsFalsy(t *testing.T) {
	ctx, err := FromJSON([]byte(`{"val":null}`))
	assert.NoError(t, err)
	out, err := mustache.Render("[{{#val}}x{{/val}}]", ctx)
	assert.NoError(t, err)
	assert.Equal(t, "[]", out)
}
