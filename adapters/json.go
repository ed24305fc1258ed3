package adapters

import (
	"encoding/json"

	"github.com/dstq/mustache"
)

// FromJSON unmarshals data and wraps it as a Context tree. JSON's own
// generic decode target (map[string]interface{}, []interface{}, float64,
// string, bool, nil) is exactly the shape FromGoValue expects, so this is
// a thin decode-then-wrap, grounded on the reference implementation's own
// json Context adapter.
func FromJSON(data []byte) (mustache.Context, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromGoValue(v), nil
}
