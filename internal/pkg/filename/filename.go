// Package filename cleans user-supplied upload names before they become
// storage object names.
package filename

import (
	"errors"
	"path"
	"strings"
)

var ErrInvalid = errors.New("invalid file name")

// Sanitize strips directories from name and replaces every character outside
// [A-Za-z0-9._-] with an underscore, so the result is safe in a URL path.
// Names that are empty or try to traverse upwards are rejected.
func Sanitize(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalid
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)
	if s == "" || s == "." || s == "/" {
		return "", ErrInvalid
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
	return s, nil
}
