package adapters

import (
	"testing"

	"github.com/dstq/mustache"
	"github.com/stretchr/testify/assert"
)

func TestFromYAMLNormalizesMappingKeys(t *testing.T) {
	ctx, err := FromYAML([]byte("name: Ada\nfriends:\n  - name: Grace\n  - name: Lin\n"))
	assert.NoError(t, err)
	out, err := mustache.Render("{{name}}: {{#friends}}{{name}} {{/friends}}", ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Ada: Grace Lin ", out)
}

func TestFromYAMLRejectsMalformedInput(t *testing.T) {
	_, err := FromYAML([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestFromYAMLNullIsFalsy(t *testing.T) {
	ctx, err := FromYAML([]byte("val: null\n"))
	assert.NoError(t, err)
	out, err := mustache.Render("[{{#val}}x{{/val}}]", ctx)
	assert.NoError(t, err)
	assert.Equal(t, "[]", out)
}
