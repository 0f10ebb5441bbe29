package weave

import (
	"path/filepath"
	"strings"
)

var fenceLanguages = map[string]string{
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".go":    "go",
	".java":  "java",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".js":    "javascript",
	".ts":    "typescript",
	".rs":    "rust",
	".swift": "swift",
	".scala": "scala",
	".cs":    "csharp",
}

// LanguageForPath guesses a fence info string from the file extension.
// Unknown extensions give "".
func LanguageForPath(path string) string {
	return fenceLanguages[strings.ToLower(filepath.Ext(path))]
}
