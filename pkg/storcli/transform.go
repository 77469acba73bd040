package storcli

import "strings"

// Transform is a pure string-to-string step applied to a field read from a
// response.
type Transform func(string) string

var (
	Lower Transform = strings.ToLower
	Upper Transform = strings.ToUpper
	Strip Transform = strings.TrimSpace
)

// FirstWord keeps the text before the first whitespace, e.g. "29C (84.20 F)"
// becomes "29C".
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Apply runs the transforms over s from left to right.
func Apply(s string, transforms ...Transform) string {
	for _, t := range transforms {
		s = t(s)
	}
	return s
}

// Field reads key from v, stringifies it and applies transforms.
func Field(v Value, key string, transforms ...Transform) (string, error) {
	field, err := v.Get(key)
	if err != nil {
		return "", err
	}
	return Apply(field.Text(), transforms...), nil
}
