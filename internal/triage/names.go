package triage

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ytget/doc-sorter/internal/platform"
)

const reservedNameChars = `<>:"/\|?*`

// cleanName trims the proposed name and drops an extension the user typed
func cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSpace(strings.TrimSuffix(name, ext))
	}
	if name == "" {
		return "", ErrNameRequired
	}
	if reason := invalidNameReason(name); reason != "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, reason)
	}
	return name, nil
}

func invalidNameReason(name string) string {
	if name == "." || name == ".." {
		return "reserved name"
	}
	if strings.ContainsAny(name, reservedNameChars) {
		return fmt.Sprintf("must not contain any of %s", reservedNameChars)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "must not contain control characters"
		}
	}
	return ""
}

// nextFreePath returns dir/name_N+ext for the lowest N from 1 that is not taken
func nextFreePath(dir, name, ext string) string {
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, n, ext))
		if !platform.FileExists(candidate) {
			return candidate
		}
	}
}
