package catalog

import "net/url"

// credentialParam never takes part in cache identity
const credentialParam = "api_key"

// CacheKey returns the normalized request signature for path and params:
// the path, then the parameters sorted by name, credential excluded.
// Equal requests produce equal keys regardless of parameter insertion order.
func CacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	clean := make(url.Values, len(params))
	for k, v := range params {
		if k == credentialParam {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}
