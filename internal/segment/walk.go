package segment

// Handler receives segments in document order.
// Every segment produces exactly one Enter/Exit pair of its kind, and the
// whole sequence is bracketed by EnterDocument/ExitDocument.
type Handler interface {
	EnterDocument(doc *Document)
	ExitDocument(doc *Document)
	EnterDelimitedComment(seg Segment)
	ExitDelimitedComment(seg Segment)
	EnterLineComment(seg Segment)
	ExitLineComment(seg Segment)
	EnterCode(seg Segment)
	ExitCode(seg Segment)
}

// BaseHandler implements Handler with no-ops; embed it to override only what is needed.
type BaseHandler struct{}

func (BaseHandler) EnterDocument(*Document)       {}
func (BaseHandler) ExitDocument(*Document)        {}
func (BaseHandler) EnterDelimitedComment(Segment) {}
func (BaseHandler) ExitDelimitedComment(Segment)  {}
func (BaseHandler) EnterLineComment(Segment)      {}
func (BaseHandler) ExitLineComment(Segment)       {}
func (BaseHandler) EnterCode(Segment)             {}
func (BaseHandler) ExitCode(Segment)              {}

// Walk pushes doc through h.
func Walk(doc *Document, h Handler) {
	h.EnterDocument(doc)
	for _, seg := range doc.All() {
		switch seg.Kind {
		case DelimitedComment:
			h.EnterDelimitedComment(seg)
			h.ExitDelimitedComment(seg)
		case LineComment:
			h.EnterLineComment(seg)
			h.ExitLineComment(seg)
		case Code:
			h.EnterCode(seg)
			h.ExitCode(seg)
		}
	}
	h.ExitDocument(doc)
}
