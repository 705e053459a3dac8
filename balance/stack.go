package balance

// OpenElementStack is the ordered stack of live ElementNodes (§3 Data
// Model, §4.2). Index 0 is always the sentinel root, an HTML-namespace
// <html> node that is never popped and whose children become the final
// output once everything above it has been flattened.
type OpenElementStack struct {
	elems            []*ElementNode
	fosterParentMode bool
}

func newOpenElementStack() *OpenElementStack {
	root := NewElementNode(HTML, "html", "")
	return &OpenElementStack{elems: []*ElementNode{root}}
}

// Root returns the never-popped sentinel at the bottom of the stack.
func (s *OpenElementStack) Root() *ElementNode { return s.elems[0] }

// Current returns the top-of-stack element (§4.2 "current node").
func (s *OpenElementStack) Current() *ElementNode { return s.elems[len(s.elems)-1] }

// Len returns the number of live elements on the stack, root included.
func (s *OpenElementStack) Len() int { return len(s.elems) }

// At returns the element at stack position i (0 is the root).
func (s *OpenElementStack) At(i int) *ElementNode { return s.elems[i] }

// IndexOf returns n's position on the stack, or -1.
func (s *OpenElementStack) IndexOf(n *ElementNode) int {
	for i, e := range s.elems {
		if e == n {
			return i
		}
	}
	return -1
}

// Contains reports whether n is currently on the stack.
func (s *OpenElementStack) Contains(n *ElementNode) bool { return s.IndexOf(n) != -1 }

// SetFosterParenting toggles §4.2's fosterParentMode flag.
func (s *OpenElementStack) SetFosterParenting(on bool) { s.fosterParentMode = on }

func (s *OpenElementStack) fosterTriggered() bool {
	return s.fosterParentMode && s.Current().IsInSet(HTML, tableSectionRowSet)
}

// fosterTarget implements §4.2's insertion-point rule when foster
// parenting is active: insert into the last <template> if it sits above
// the last <table>; else immediately before the last <table> (in its
// parent); else into the root.
func (s *OpenElementStack) fosterTarget() (parent, before *ElementNode) {
	lastTemplate := s.lastIndexWhere(func(n *ElementNode) bool { return n.Is("template") })
	lastTable := s.lastIndexWhere(func(n *ElementNode) bool { return n.Is("table") })

	if lastTemplate != -1 && (lastTable == -1 || lastTemplate > lastTable) {
		return s.elems[lastTemplate], nil
	}
	if lastTable == -1 {
		return s.Root(), nil
	}
	table := s.elems[lastTable]
	if p := table.Parent(); p != nil {
		return p, table
	}
	return s.Root(), nil
}

func (s *OpenElementStack) lastIndexWhere(pred func(*ElementNode) bool) int {
	for i := len(s.elems) - 1; i >= 0; i-- {
		if pred(s.elems[i]) {
			return i
		}
	}
	return -1
}

// InsertText inserts a character fragment at the appropriate insertion
// point (§4.2 Insertion point), foster-parenting it out of the current
// table context when fosterParentMode is set and the current node is a
// table/section/row.
func (s *OpenElementStack) InsertText(text string) {
	if s.fosterTriggered() {
		parent, before := s.fosterTarget()
		if before != nil {
			parent.InsertTextBefore(text, before)
		} else {
			parent.AppendText(text)
		}
		return
	}
	s.Current().AppendText(text)
}

// InsertElement inserts n at the appropriate insertion point and pushes
// it onto the stack (§4.2 Insertion point).
func (s *OpenElementStack) InsertElement(n *ElementNode) *ElementNode {
	if s.fosterTriggered() {
		parent, before := s.fosterTarget()
		if before != nil {
			parent.InsertChildBefore(n, before)
		} else {
			parent.AppendChild(n)
		}
	} else {
		s.Current().AppendChild(n)
	}
	s.elems = append(s.elems, n)
	return n
}

// Push adds n to the top of the stack without touching the tree, for a
// node that has already been inserted into the tree by some other means.
func (s *OpenElementStack) Push(n *ElementNode) { s.elems = append(s.elems, n) }

// Pop removes and flattens the current node. The root is never popped.
func (s *OpenElementStack) Pop() *ElementNode {
	if len(s.elems) <= 1 {
		return nil
	}
	idx := len(s.elems) - 1
	n := s.elems[idx]
	s.elems = s.elems[:idx]
	if !n.IsFlattened() {
		n.Flatten()
	}
	return n
}

// PopTo pops elements until the current node is at stack position idx.
func (s *OpenElementStack) PopTo(idx int) {
	for len(s.elems)-1 > idx {
		s.Pop()
	}
}

// PopTag pops through and including the first element matching match
// (§4.2 popTag).
func (s *OpenElementStack) PopTag(match func(*ElementNode) bool) {
	for {
		n := s.Pop()
		if n == nil || match(n) {
			return
		}
	}
}

// PopTagNamed pops through and including the first HTML element whose
// local name is one of names (the heading-set open question, §9, is
// handled by callers passing headingTags.has as the predicate instead).
func (s *OpenElementStack) PopTagNamed(names ...string) {
	s.PopTag(func(n *ElementNode) bool { return n.Is(names...) })
}

// ClearToContext pops until the current node matches ctx, never popping
// the root (§4.2 clearToContext).
func (s *OpenElementStack) ClearToContext(ctx set) {
	for len(s.elems) > 1 && !s.Current().IsInSet(HTML, ctx) {
		s.Pop()
	}
}

// RemoveElement excises n from the stack by identity. If flatten is true
// and n is not already flattened, it is flattened in place first (§4.2
// removeElement).
func (s *OpenElementStack) RemoveElement(n *ElementNode, flatten bool) {
	idx := s.IndexOf(n)
	if idx == -1 {
		return
	}
	s.elems = append(s.elems[:idx], s.elems[idx+1:]...)
	if flatten && !n.IsFlattened() {
		n.Flatten()
	}
}

// InsertAfter splices b into the stack immediately after a (§4.2
// insertAfter). If a is not on the stack, b is appended.
func (s *OpenElementStack) InsertAfter(a, b *ElementNode) {
	idx := s.IndexOf(a)
	if idx == -1 {
		s.elems = append(s.elems, b)
		return
	}
	s.elems = append(s.elems, nil)
	copy(s.elems[idx+2:], s.elems[idx+1:])
	s.elems[idx+1] = b
}

// ReplaceAt overwrites the stack entry at position i (§4.2 replaceAt).
func (s *OpenElementStack) ReplaceAt(i int, n *ElementNode) { s.elems[i] = n }

// InScope walks the stack top-to-root, returning true on reaching target
// and false on reaching a boundary-set member first (§4.2 Scope
// predicates).
func (s *OpenElementStack) InScope(target *ElementNode, boundary set) bool {
	for i := len(s.elems) - 1; i >= 0; i-- {
		e := s.elems[i]
		if e == target {
			return true
		}
		if boundary.has(e.LocalName) {
			return false
		}
	}
	return false
}

// TagInScope is InScope by tag name rather than node identity, for mode
// handlers that haven't kept a live reference to the element in
// question.
func (s *OpenElementStack) TagInScope(name string, boundary set) bool {
	for i := len(s.elems) - 1; i >= 0; i-- {
		e := s.elems[i]
		if e.Namespace == HTML && e.LocalName == name {
			return true
		}
		if boundary.has(e.LocalName) {
			return false
		}
	}
	return false
}

func (s *OpenElementStack) InDefaultScope(t *ElementNode) bool  { return s.InScope(t, defaultScope) }
func (s *OpenElementStack) InListItemScope(t *ElementNode) bool { return s.InScope(t, listItemScope) }
func (s *OpenElementStack) InButtonScope(t *ElementNode) bool   { return s.InScope(t, buttonScope) }
func (s *OpenElementStack) InTableScope(t *ElementNode) bool    { return s.InScope(t, tableScope) }

func (s *OpenElementStack) HasTagInDefaultScope(name string) bool {
	return s.TagInScope(name, defaultScope)
}
func (s *OpenElementStack) HasTagInListItemScope(name string) bool {
	return s.TagInScope(name, listItemScope)
}
func (s *OpenElementStack) HasTagInButtonScope(name string) bool {
	return s.TagInScope(name, buttonScope)
}
func (s *OpenElementStack) HasTagInTableScope(name string) bool {
	return s.TagInScope(name, tableScope)
}

// GenerateImpliedEndTags pops while the current node is in the implied
// end tag set, excluding "except" (§4.2 Implied end tags). Pass "" for
// no exclusion.
func (s *OpenElementStack) GenerateImpliedEndTags(except string) {
	for {
		cur := s.Current().LocalName
		if cur == except || !impliedEndTags.has(cur) {
			return
		}
		s.Pop()
	}
}

// GenerateImpliedEndTagsThoroughly is the "thoroughly" variant, which
// additionally pops table-structural elements (§4.2).
func (s *OpenElementStack) GenerateImpliedEndTagsThoroughly() {
	for impliedEndTagsThorough.has(s.Current().LocalName) {
		s.Pop()
	}
}

// FlattenRemaining pops every element above the root, in top-to-bottom
// order, and returns the root's serialized children — used at EOF (§4.6,
// §9 "Streaming output").
func (s *OpenElementStack) FlattenRemaining() string {
	for len(s.elems) > 1 {
		s.Pop()
	}
	root := s.Root()
	out := root.renderChildren()
	root.children = nil
	return out
}
