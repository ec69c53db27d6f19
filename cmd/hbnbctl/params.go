package main

import (
	"strconv"
	"strings"
)

// parseParams turns key=value arguments into attributes. Malformed pairs and
// values that are neither quoted strings nor numbers are skipped.
func parseParams(args []string) map[string]any {
	attrs := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		if !found || key == "" {
			continue
		}

		if value, ok := parseTyped(raw); ok {
			attrs[key] = value
		}
	}

	return attrs
}

// parseValue is parseTyped falling back to the raw text.
func parseValue(raw string) any {
	if value, ok := parseTyped(raw); ok {
		return value
	}

	return raw
}

// parseTyped reads "quoted_text" as a string with underscores as spaces and
// \" as a quote, then integers, then floats.
func parseTyped(raw string) (any, bool) {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		inner := raw[1 : len(raw)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)

		return strings.ReplaceAll(inner, "_", " "), true
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}

	return nil, false
}
