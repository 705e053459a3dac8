// Package balance implements an HTML5 fragment tree-balancing engine: it
// reads a fragment of sanitized, HTML-like markup and emits well-formed,
// spec-conformant HTML that survives round-tripping through any conforming
// HTML5 parser/serializer.
//
// The engine implements the tree-construction half of the HTML5 parsing
// algorithm only (insertion modes, stack of open elements, active
// formatting elements, adoption agency). Tokenization, attribute
// sanitization, and DOM materialization are out of scope; see doc.go.
package balance

// Namespace identifies which of the three foreign-content namespaces an
// ElementNode belongs to.
type Namespace uint8

const (
	HTML Namespace = iota
	MathML
	SVG
)

func (n Namespace) String() string {
	switch n {
	case MathML:
		return "mathml"
	case SVG:
		return "svg"
	default:
		return "html"
	}
}
