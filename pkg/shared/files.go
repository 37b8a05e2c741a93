package shared

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadFile reads the whole file and returns its content trimmed of
// surrounding whitespace.
func ReadFile(file string) (string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrapf(err, "reading file %s", file)
	}
	return strings.TrimSpace(string(content)), nil
}

// ReadFileValueString reads the file into the given string pointer.
func ReadFileValueString(file string, val *string) error {
	content, err := ReadFile(file)
	if err != nil {
		return err
	}
	*val = content
	return nil
}
