package route

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SupportedMethods is the fixed set of HTTP methods accepted at registration.
var SupportedMethods = []interface{}{
	"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
}

// segment is one element of a parsed pattern: either a literal to be compared
// case-sensitively, or a named placeholder capturing one non-empty segment.
type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool {
	return s.param != ""
}

func validateMethod(method string) error {
	return validation.Validate(method,
		validation.Required,
		validation.In(SupportedMethods...),
	)
}

// parsePattern splits a pattern such as /items/{id}/tags into segments.
// The root pattern "/" parses to zero segments.
func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, validation.NewError("validation_invalid_pattern", "pattern must start with /")
	}

	if pattern == "/" {
		return nil, nil
	}

	parts := strings.Split(pattern[1:], "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, validation.NewError("validation_empty_segment", "pattern must not contain empty segments")
		}

		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if err := validateParamName(name); err != nil {
				return nil, err
			}
			if seen[name] {
				return nil, validation.NewError("validation_duplicate_param", "placeholder name used twice in pattern")
			}
			seen[name] = true
			segments = append(segments, segment{param: name})
			continue
		}

		if strings.ContainsAny(part, "{}") {
			return nil, validation.NewError("validation_invalid_segment", "braces are only allowed as a full {name} segment")
		}

		segments = append(segments, segment{literal: part})
	}

	return segments, nil
}

func validateParamName(name string) error {
	if name == "" {
		return validation.NewError("validation_empty_param", "placeholder name cannot be empty")
	}

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return validation.NewError("validation_invalid_param", "placeholder name cannot start with a digit")
			}
		default:
			return validation.NewError("validation_invalid_param", "placeholder name must be alphanumeric or underscore")
		}
	}

	return nil
}

// overlaps reports whether two parsed patterns can match the same concrete
// path. Equal-length patterns overlap when every segment pair is compatible:
// identical literals, or a placeholder on either side.
func overlaps(a, b []segment) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].isParam() || b[i].isParam() {
			continue
		}
		if a[i].literal != b[i].literal {
			return false
		}
	}

	return true
}

// equal reports whether two parsed patterns are the exact same shape:
// literals identical and placeholders in the same positions.
func equal(a, b []segment) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].isParam() != b[i].isParam() {
			return false
		}
		if !a[i].isParam() && a[i].literal != b[i].literal {
			return false
		}
	}

	return true
}
