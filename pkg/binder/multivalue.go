package binder

import (
	"net/url"
	"strings"
)

// NormalizeMultiValues rewrites the given keys of params into a single
// canonical repeated-key form. A key may arrive as a sequence (the key repeated,
// or sent as "key[]") whose elements are kept as they are, or as one string that
// is split on commas when it contains any. Either way every value is trimmed and
// empty values are dropped. A key left with no values is removed so it imposes
// no filter. Keys not listed are copied untouched.
func NormalizeMultiValues(params url.Values, keys ...string) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		out[k] = append([]string(nil), v...)
	}

	for _, key := range keys {
		bracketKey := key + "[]"
		plain, hasPlain := out[key]
		bracketed, hasBracketed := out[bracketKey]
		if !hasPlain && !hasBracketed {
			continue
		}
		delete(out, key)
		delete(out, bracketKey)

		raw := append(plain, bracketed...)

		var values []string
		if len(bracketed) == 0 && len(plain) == 1 {
			values = SplitValues(plain[0])
		} else {
			values = compact(raw)
		}

		if len(values) > 0 {
			out[key] = values
		}
	}

	return out
}

// SplitValues turns a single string parameter into its values: split on commas
// when present, trimmed, with empty values dropped.
func SplitValues(s string) []string {
	if !strings.Contains(s, ",") {
		return compact([]string{s})
	}
	return compact(strings.Split(s, ","))
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
