package provider

import "strings"

// Normalizer rewrites an already validated value into its canonical form.
type Normalizer func(string) string

// requireSetting applies the presence, emptiness and whitespace checks to a
// raw scalar value.
func requireSetting(key, raw string, ok bool) (string, error) {
	if !ok {
		return "", &Error{Key: key, Kind: KindMissing}
	}
	if raw == "" {
		return "", &Error{Key: key, Kind: KindEmpty}
	}
	if strings.TrimSpace(raw) == "" {
		return "", &Error{Key: key, Kind: KindWhiteSpace}
	}
	return raw, nil
}

// requireField checks a connection record field for emptiness only.
// Whitespace-only fields are accepted.
func requireField(name, field, value string) error {
	if value == "" {
		return &Error{Key: name, Field: field, Connection: true, Kind: KindEmpty}
	}
	return nil
}

// EnsureLeadingBackslash prefixes value with `\` unless it already starts with one.
func EnsureLeadingBackslash(value string) string {
	if strings.HasPrefix(value, `\`) {
		return value
	}
	return `\` + value
}

// EnsureTrailingSlash appends "/" unless value already ends with one.
func EnsureTrailingSlash(value string) string {
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
