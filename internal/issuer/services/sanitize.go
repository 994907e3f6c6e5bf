package services

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/photosync/internal/common"
)

const (
	maxComponentLen = 64
	maxFilenameLen  = 128
)

var safeComponent = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// SanitizeComponent trims value and checks that it is a short, path-safe name.
func SanitizeComponent(value, field string) (string, error) {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return "", fmt.Errorf("%w: %s is required", common.ErrInvalidInput, field)
	case len(v) > maxComponentLen:
		return "", fmt.Errorf("%w: %s must be <= %d chars", common.ErrInvalidInput, field, maxComponentLen)
	case !safeComponent.MatchString(v):
		return "", fmt.Errorf("%w: %s contains invalid characters", common.ErrInvalidInput, field)
	}
	return v, nil
}

// SanitizeFilename keeps the base name of filename and requires every
// dot-separated piece to be a valid component.
func SanitizeFilename(filename string) (string, error) {
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: filename is required", common.ErrInvalidInput)
	}
	if len(name) > maxFilenameLen {
		return "", fmt.Errorf("%w: filename must be <= %d chars", common.ErrInvalidInput, maxFilenameLen)
	}

	pieces := strings.Split(name, ".")
	for i, p := range pieces {
		clean, err := SanitizeComponent(p, "filename part")
		if err != nil {
			return "", err
		}
		pieces[i] = clean
	}
	return strings.Join(pieces, "."), nil
}
