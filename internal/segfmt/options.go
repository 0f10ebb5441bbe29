package segfmt

import (
	"fmt"
	"strings"
)

// PathMode selects how file headers show paths.
type PathMode string

const (
	// PathModeRelative shows paths relative to the file set base dir.
	PathModeRelative PathMode = "relative"
	PathModeAbsolute PathMode = "absolute"
	PathModeBasename PathMode = "basename"
)

// ParsePathMode validates a --path-mode value.
func ParsePathMode(s string) (PathMode, error) {
	switch m := PathMode(strings.ToLower(strings.TrimSpace(s))); m {
	case PathModeRelative, PathModeAbsolute, PathModeBasename:
		return m, nil
	case "":
		return PathModeRelative, nil
	default:
		return "", fmt.Errorf("unknown path mode: %s (expected relative|absolute|basename)", s)
	}
}

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color bool
	// Width truncates quoted text to this many terminal cells; 0 means no limit.
	Width int
	// PathMode applies to file headers; empty means relative.
	PathMode PathMode
}
