package balance

import "strings"

// ElementNode is the engine's lightweight tree node (§3 Data Model). It
// deliberately stores far less than a DOM element: a namespace, a
// lowercased local name, a pre-canonicalized attribute string, and an
// ordered list of children that are either text fragments or other
// ElementNodes. Closed subtrees are flattened to strings and never
// revisited, which is what keeps memory bounded by nesting depth rather
// than document size (§5 Resource bounds).
type ElementNode struct {
	Namespace Namespace
	LocalName string
	Attrs     string

	children []child
	parent   *ElementNode
}

type child struct {
	text string
	elem *ElementNode
}

func textChild(s string) child        { return child{text: s} }
func elemChild(e *ElementNode) child   { return child{elem: e} }
func (c child) isText() bool          { return c.elem == nil }

// flattenedSentinel is the distinguished "parent" value a node carries
// once it has been serialized and detached (§3 Lifecycle, invariant b).
var flattenedSentinel = &ElementNode{LocalName: "#flattened"}

// NewElementNode creates a node with no parent and no children.
func NewElementNode(ns Namespace, localName, attrs string) *ElementNode {
	return &ElementNode{Namespace: ns, LocalName: localName, Attrs: attrs}
}

// IsFlattened reports whether the node has been serialized and detached.
func (n *ElementNode) IsFlattened() bool { return n.parent == flattenedSentinel }

// Parent returns the live parent, or nil if unlinked or flattened.
func (n *ElementNode) Parent() *ElementNode {
	if n.parent == flattenedSentinel {
		return nil
	}
	return n.parent
}

// AppendText appends a text fragment to the node's children, coalescing
// with a trailing text child when one is already present (§3 invariant a:
// all but the last child may be text, so a run of character tokens stays
// as a single string instead of fragmenting the children list).
func (n *ElementNode) AppendText(s string) {
	if s == "" {
		return
	}
	if last := len(n.children) - 1; last >= 0 && n.children[last].isText() {
		n.children[last].text += s
		return
	}
	n.children = append(n.children, textChild(s))
}

// AppendChild links e as the new last child of n.
func (n *ElementNode) AppendChild(e *ElementNode) {
	e.parent = n
	n.children = append(n.children, elemChild(e))
}

// InsertChildBefore inserts e immediately before the existing child
// "before" (an ElementNode). If before is nil, or not found among n's
// element children, e is appended.
func (n *ElementNode) InsertChildBefore(e, before *ElementNode) {
	idx := n.indexOfElem(before)
	if idx == -1 {
		n.AppendChild(e)
		return
	}
	e.parent = n
	n.children = append(n.children, child{})
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = elemChild(e)
}

// InsertTextBefore inserts a text fragment immediately before the
// existing child "before", coalescing with a preceding text child when
// possible. Used by foster-parenting (§4.2 Insertion point), which can
// require inserting text immediately before the table node rather than
// appending to its parent.
func (n *ElementNode) InsertTextBefore(text string, before *ElementNode) {
	if text == "" {
		return
	}
	idx := n.indexOfElem(before)
	if idx == -1 {
		n.AppendText(text)
		return
	}
	if idx-1 >= 0 && n.children[idx-1].isText() {
		n.children[idx-1].text += text
		return
	}
	n.children = append(n.children, child{})
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = textChild(text)
}

func (n *ElementNode) indexOfElem(e *ElementNode) int {
	if e == nil {
		return -1
	}
	for i, c := range n.children {
		if c.elem == e {
			return i
		}
	}
	return -1
}

// RemoveChild excises e from n's children by identity, without flattening
// it, leaving e's parent pointer untouched so callers may immediately
// reattach it elsewhere (used by the adoption agency's inner loop, §4.4
// step 14.6).
func (n *ElementNode) RemoveChild(e *ElementNode) {
	idx := n.indexOfElem(e)
	if idx == -1 {
		return
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
}

// AdoptChildren transfers all of other's children, in order, onto the end
// of n's children list, reparenting any element children. other is left
// with no children (§4.1 "adopt all children from another node").
func (n *ElementNode) AdoptChildren(other *ElementNode) {
	for _, c := range other.children {
		if !c.isText() {
			c.elem.parent = n
		}
		n.children = append(n.children, c)
	}
	other.children = nil
}

// HasChildren reports whether the node currently has any children,
// flattened or not.
func (n *ElementNode) HasChildren() bool { return len(n.children) > 0 }

// Flatten serializes n's subtree to a string, recursively flattening any
// still-open ElementNode children first, replaces n in its parent's
// children list with that string, and marks n flattened (§3 Lifecycle,
// §4.1 "flatten"). Calling Flatten on an already-flattened node panics: it
// is an internal invariant violation (§7 category 1).
func (n *ElementNode) Flatten() string {
	if n.IsFlattened() {
		panic(newAssertionError("flatten: node already flattened: <" + n.LocalName + ">"))
	}

	s := n.renderOpenTag()
	if !isVoidElementNode(n) {
		s += n.renderChildren()
		s += "</" + n.LocalName + ">"
	} else if n.HasChildren() {
		panic(newAssertionError("flatten: void element <" + n.LocalName + "> has children"))
	}

	if p := n.parent; p != nil && p != flattenedSentinel {
		idx := p.indexOfElem(n)
		if idx != -1 {
			p.children[idx] = textChild(s)
		}
	}
	n.children = nil
	n.parent = flattenedSentinel
	return s
}

func isVoidElementNode(n *ElementNode) bool {
	return n.Namespace == HTML && isVoidElement(n.LocalName)
}

func (n *ElementNode) renderOpenTag() string {
	return "<" + n.LocalName + n.Attrs + ">"
}

func (n *ElementNode) renderChildren() string {
	var b strings.Builder
	for _, c := range n.children {
		if c.isText() {
			b.WriteString(c.text)
			continue
		}
		if c.elem.IsFlattened() {
			// Shouldn't happen (a flattened node is detached from its
			// parent's children by definition), but render defensively
			// rather than silently drop content.
			b.WriteString(c.elem.renderOpenTag())
			continue
		}
		b.WriteString(c.elem.Flatten())
	}
	return b.String()
}

// clone copies namespace, local name, and attribute string, producing a
// fresh node with no parent and no children — used by the active
// formatting list's reconstruction and by the adoption agency. It copies
// the node's Attrs as they are now: the formatting list keeps no
// separate frozen copy of the attribute string.
func (n *ElementNode) clone() *ElementNode {
	return NewElementNode(n.Namespace, n.LocalName, n.Attrs)
}

// Is reports whether n is an HTML-namespace element with local name
// matching one of names (§4.1 isA predicate, string form).
func (n *ElementNode) Is(names ...string) bool {
	if n.Namespace != HTML {
		return false
	}
	for _, name := range names {
		if n.LocalName == name {
			return true
		}
	}
	return false
}

// IsInSet reports whether n is in namespace ns with a local name present
// in s (§4.1 isA predicate, namespace-keyed-set form).
func (n *ElementNode) IsInSet(ns Namespace, s set) bool {
	return n.Namespace == ns && s.has(n.LocalName)
}

// IsMathMLTextIntegrationPoint implements the MathML text integration
// point predicate (§4.1).
func (n *ElementNode) IsMathMLTextIntegrationPoint() bool {
	return n.IsInSet(MathML, mathMLTextIntegrationPoints)
}

// IsHTMLIntegrationPoint implements the HTML integration point predicate
// (§4.1): SVG foreignObject/desc/title, or MathML annotation-xml with an
// html-ish encoding attribute.
func (n *ElementNode) IsHTMLIntegrationPoint() bool {
	if n.IsInSet(SVG, svgHTMLIntegrationPoints) {
		return true
	}
	if n.Namespace == MathML && n.LocalName == "annotation-xml" {
		switch strings.ToLower(attrValue(n.Attrs, "encoding")) {
		case "text/html", "application/xhtml+xml":
			return true
		}
	}
	return false
}

// isSpecial reports whether n belongs to the special set (§4.4 step 10).
func (n *ElementNode) isSpecial() bool { return isSpecial(n.LocalName) }
