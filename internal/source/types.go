package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHadBOM indicates a UTF-8 byte order mark was removed on load.
	FileHadBOM
	// FileDecodedUTF16 indicates the file was UTF-16 on disk and was decoded to UTF-8.
	FileDecodedUTF16
)

// File captures metadata and content for a single source file.
// Content is kept byte for byte as loaded; line terminators are never rewritten.
// Content must not be modified after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags

	text string // Content как строка; Slice режет её без аллокаций
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
