package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadString reads a string parameter from input.
func ReadString(params map[string]any, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("parameter %q is required", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		if required {
			return "", fmt.Errorf("parameter %q must be a string", key)
		}
		return "", nil
	}
	return strings.TrimSpace(s), nil
}

// ReadStringDefault reads a string parameter with a default value.
func ReadStringDefault(params map[string]any, key, defaultVal string) string {
	s, err := ReadString(params, key, false)
	if err != nil || s == "" {
		return defaultVal
	}
	return s
}

// ReadInt reads an integer parameter from input.
func ReadInt(params map[string]any, key string, required bool) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("parameter %q is required", key)
		}
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be a number", key)
		}
		return i, nil
	}
	return 0, fmt.Errorf("parameter %q must be a number", key)
}

// ReadIntDefault reads an integer parameter with a default value.
func ReadIntDefault(params map[string]any, key string, defaultVal int) int {
	n, err := ReadInt(params, key, false)
	if err != nil || n == 0 {
		return defaultVal
	}
	return n
}

// ReadMap reads an object parameter from input.
func ReadMap(params map[string]any, key string, required bool) (map[string]any, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("parameter %q is required", key)
		}
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an object", key)
	}
	return m, nil
}
