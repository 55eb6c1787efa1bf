package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidTag is returned for a malformed `sanitize` tag.
var ErrInvalidTag = errors.New("sanitizer: invalid tag")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"lower":       ToLower,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"strip_html":  StripHTML,

		"text": func(s string) string {
			return RemoveExtraWhitespace(RemoveControlChars(s))
		},
	}
)

// RegisterSanitizer adds a custom sanitizer function to the registry.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies sanitization to struct fields based on their tags.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.New("sanitizer: must pass a pointer to struct")
	}
	return sanitizeStruct(rv.Elem())
}

func sanitizeStruct(rv reflect.Value) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			if err := sanitizeValue(field, tag); err != nil {
				return err
			}

		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch {
			case elem.Kind() == reflect.String && tag != "":
				if err := sanitizeValue(elem, tag); err != nil {
					return err
				}
			case elem.Kind() == reflect.Struct:
				if err := sanitizeStruct(elem); err != nil {
					return err
				}
			}

		case reflect.Struct:
			if err := sanitizeStruct(field); err != nil {
				return err
			}

		case reflect.Slice:
			if tag == "" || field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := range field.Len() {
				if err := sanitizeValue(field.Index(j), tag); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func sanitizeValue(v reflect.Value, tag string) error {
	s, err := apply(v.String(), tag)
	if err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

func apply(value, tag string) (string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if limit, ok := strings.CutPrefix(name, "max:"); ok {
			n, err := strconv.Atoi(limit)
			if err != nil || n <= 0 {
				return "", fmt.Errorf("%w: %q", ErrInvalidTag, name)
			}
			value = MaxLength(value, n)
			continue
		}

		fn, ok := registry[name]
		if !ok {
			return "", fmt.Errorf("%w: unknown sanitizer %q", ErrInvalidTag, name)
		}
		value = fn(value)
	}

	return value, nil
}
