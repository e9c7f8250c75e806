package param

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cast"
)

// Binding binds query values and the json body into v
//
// body fields win over query fields of the same name.
func Binding(r *http.Request, v interface{}) error {
	values := map[string]interface{}{}
	for key, item := range r.URL.Query() {
		if len(item) > 0 {
			values[key] = item[0]
		}
	}

	if r.Body != nil && r.Method != http.MethodGet {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			for key, item := range body {
				values[key] = item
			}
		}
	}

	bts, err := json.Marshal(values)
	if err != nil {
		return err
	}

	return json.Unmarshal(bts, v)
}

// Int reads an integer query value with a fallback
func Int(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		return cast.ToInt(v)
	}
	return def
}
