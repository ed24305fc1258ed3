package adapters

import (
	"fmt"

	"github.com/dstq/mustache"
	"gopkg.in/yaml.v2"
)

// FromYAML unmarshals data and wraps it as a Context tree, grounded on the
// reference implementation's yaml Context adapter. yaml.v2 decodes
// mappings as map[interface{}]interface{} rather than JSON's
// map[string]interface{}; normalizeYAML brings the tree into the shape
// FromGoValue expects.
func FromYAML(data []byte) (mustache.Context, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromGoValue(normalizeYAML(v)), nil
}

func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}
