package core

import (
	"errors"
	"strings"
)

var ErrEmptyCommand = errors.New("empty command")

// SplitCommand splits a key-value command on whitespace. There is no quoting,
// so an argument cannot contain whitespace.
func SplitCommand(command string) ([]string, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}

	return parts, nil
}
