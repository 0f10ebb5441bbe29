package token

// Kind represents the category of a scanned token.
type Kind uint8

const (
	// Invalid is the zero value and is never produced by the scanner.
	Invalid Kind = iota
	// DelimitedComment is a block comment starting with "/*".
	DelimitedComment
	// LineComment is a comment from "//" up to (not including) CR, LF or end of input.
	LineComment
	// Any is a single character that does not start a comment.
	Any
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	DelimitedComment: "DelimitedComment",
	LineComment:      "LineComment",
	Any:              "Any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsComment reports whether k is one of the comment kinds.
func (k Kind) IsComment() bool {
	return k == DelimitedComment || k == LineComment
}
