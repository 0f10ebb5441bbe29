package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var seedExtensions = map[string]bool{
	".c": true, ".h": true, ".go": true, ".kt": true, ".java": true, ".js": true,
}

// handSeeds cover delimiter edge cases that testdata may miss.
var handSeeds = []string{
	"",
	"/",
	"*",
	"/*",
	"*/",
	"//",
	"/**/",
	"/*/",
	"/***/",
	"a/b*c",
	"/* a /* b */ c */",
	"// x\r\ny",
	"// x\ry",
	"x = \"// not special\";",
	"\xef\xbb\xbf// bom",
	"\xff\xfe/\x00/\x00",
	"/* \xc3\x28 */\xe2\x82",
	"int a; /* c */\n// line\nreturn a;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем файлы с известными расширениями
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !seedExtensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return src[:maxSeedBytes]
	}
	return src
}
