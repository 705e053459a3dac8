package balance

import "strings"

// adjustedCurrentNode is the node whose namespace governs how the next
// token is processed (§4.5). It is always the current node: when the
// stack holds only the root, that is the HTML-namespace <html> root,
// which stands in for the <body> fragment context since both are HTML.
func (b *Balancer) adjustedCurrentNode() *ElementNode {
	return b.stack.Current()
}

// processToken is the single entry point the driver loop calls for
// every token, eof included (§4.5, §4.6). It decides whether the token belongs to
// foreign content or to ordinary HTML processing, per the rules for
// "tree construction dispatcher".
func (b *Balancer) processToken(tok *Token) {
	cur := b.adjustedCurrentNode()

	if cur.Namespace == HTML || b.isHTMLLikeForeign(cur, tok) {
		b.dispatchHTML(tok)
		return
	}

	b.processForeignContent(tok)
}

// isHTMLLikeForeign reports whether, despite the current node being a
// foreign-namespace element, tok should still be processed by the HTML
// insertion modes (§4.5): the current node is a text integration point
// and tok is a start tag other than mglyph/malignmark, or a character
// token; or the current node is an HTML integration point and tok is a
// start tag or character token; or the current node is MathML
// annotation-xml and tok is a start tag named svg; or tok is EOF.
func (b *Balancer) isHTMLLikeForeign(cur *ElementNode, tok *Token) bool {
	if tok.Kind == eofToken {
		return true
	}
	if cur.IsMathMLTextIntegrationPoint() {
		if tok.Kind == textToken {
			return true
		}
		if tok.Kind == tagToken && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return true
		}
	}
	if cur.Namespace == MathML && cur.LocalName == "annotation-xml" && tok.Kind == tagToken && tok.Name == "svg" {
		return true
	}
	if cur.IsHTMLIntegrationPoint() && (tok.Kind == tagToken || tok.Kind == textToken) {
		return true
	}
	return false
}

// processForeignContent implements the "rules for parsing tokens in
// foreign content" (§4.5): most start tags are inserted as foreign
// elements in the current namespace and popped at once when the start
// tag is self-closing; the breakout set reprocesses the
// token in HTML insertion mode after popping back out of foreign
// content; end tags pop through a matching local name (case-
// insensitively) or are ignored.
func (b *Balancer) processForeignContent(tok *Token) {
	switch tok.Kind {
	case textToken:
		b.formatting.Reconstruct(b.stack)
		b.stack.InsertText(tok.Text)
		return

	case tagToken:
		if isForeignBreakout(tok.Name) || (tok.Name == "font" && hasAnyAttr(tok.Attrs, "color", "face", "size")) {
			b.popOutOfForeignContent()
			b.dispatchHTML(tok)
			return
		}

		ns := b.adjustedCurrentNode().Namespace
		n := b.insertForeignElement(tok, ns)
		if tok.SelfClosing {
			n.Attrs = adjustForeignAttrs(n.Attrs)
			b.stack.Pop()
		}
		return

	case endTagToken:
		b.popForeignEndTag(tok.Name)
		return

	case eofToken:
		return
	}
}

// popOutOfForeignContent implements the breakout-set handling (§4.5
// "Any other start tag"): pop until the current node is in the HTML
// namespace, or is a MathML/SVG text or HTML integration point.
func (b *Balancer) popOutOfForeignContent() {
	for b.stack.Len() > 1 {
		cur := b.stack.Current()
		if cur.Namespace == HTML || cur.IsMathMLTextIntegrationPoint() || cur.IsHTMLIntegrationPoint() {
			return
		}
		b.stack.Pop()
	}
}

// popForeignEndTag implements §4.5's foreign end-tag algorithm: walk
// down from the current node looking for one whose local name matches
// case-insensitively, popping through it; stop at the first HTML-
// namespace element without effect.
func (b *Balancer) popForeignEndTag(name string) {
	lower := strings.ToLower(name)
	for i := b.stack.Len() - 1; i > 0; i-- {
		node := b.stack.At(i)
		if strings.ToLower(node.LocalName) == lower {
			b.stack.PopTo(i)
			b.stack.Pop()
			return
		}
		if node.Namespace == HTML {
			return
		}
	}
}

// adjustForeignAttrs is a hook point for namespaced-attribute
// adjustment (xlink:href and friends, §4.5 "adjust foreign
// attributes"); this engine's canonical attribute model (§3) is a flat
// string rather than a namespaced map, and the handful of xlink/xml
// attributes that would need a namespace prefix never affect balancing
// semantics, so no rewriting happens here beyond returning attrs
// unchanged.
func adjustForeignAttrs(attrs string) string { return attrs }
