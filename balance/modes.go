package balance

// insertionMode mirrors the subset of HTML5's tree construction
// insertion modes this engine needs for fragment content (§1, §4.3,
// §9). There is no "initial"/"before html"/"in head"/"after body" mode:
// a fragment's context element is always treated as <body>, so parsing
// starts directly in modeInBody (§4.3 "Fragment context").
type insertionMode int

const (
	modeInBody insertionMode = iota
	modeInTable
	modeInTableText
	modeInCaption
	modeInColumnGroup
	modeInTableBody
	modeInRow
	modeInCell
	modeInTemplate
)

func (m insertionMode) String() string {
	switch m {
	case modeInBody:
		return "in body"
	case modeInTable:
		return "in table"
	case modeInTableText:
		return "in table text"
	case modeInCaption:
		return "in caption"
	case modeInColumnGroup:
		return "in column group"
	case modeInTableBody:
		return "in table body"
	case modeInRow:
		return "in row"
	case modeInCell:
		return "in cell"
	case modeInTemplate:
		return "in template"
	default:
		return "unknown"
	}
}

// pendingTableCharacters buffers character tokens seen in modeInTable
// contexts that must be deferred until it's known whether they are all
// whitespace (inserted in place) or contain non-whitespace (foster-
// parented) (§9, "in table text").
type pendingTableCharacters struct {
	text        string
	sawNonSpace bool
}

func (p *pendingTableCharacters) reset() { p.text, p.sawNonSpace = "", false }

func isAllSpace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
		default:
			return false
		}
	}
	return true
}

// dispatchHTML runs tok through the current insertion mode, looping
// while a handler asks to reprocess the same token under a new mode
// (§9's "process the token using the rules for <mode>").
func (b *Balancer) dispatchHTML(tok *Token) {
	for {
		var again bool
		switch b.mode {
		case modeInBody:
			again = b.inBody(tok)
		case modeInTable:
			again = b.inTable(tok)
		case modeInTableText:
			again = b.inTableText(tok)
		case modeInCaption:
			again = b.inCaption(tok)
		case modeInColumnGroup:
			again = b.inColumnGroup(tok)
		case modeInTableBody:
			again = b.inTableBody(tok)
		case modeInRow:
			again = b.inRow(tok)
		case modeInCell:
			again = b.inCell(tok)
		case modeInTemplate:
			again = b.inTemplateMode(tok)
		}
		if !again {
			return
		}
	}
}

// insertHTMLElement creates a node for a start tag in the HTML
// namespace, inserts it at the current insertion point, and pushes it
// onto the stack of open elements (§4.2).
func (b *Balancer) insertHTMLElement(tok *Token) *ElementNode {
	n := NewElementNode(HTML, tok.Name, tok.Attrs)
	return b.stack.InsertElement(n)
}

func (b *Balancer) insertForeignElement(tok *Token, ns Namespace) *ElementNode {
	n := NewElementNode(ns, tok.Name, tok.Attrs)
	return b.stack.InsertElement(n)
}

// closePTagIfInButtonScope implements the "close a p element" algorithm
// (§9), used before opening most block-level elements in-body.
func (b *Balancer) closePTagIfInButtonScope() {
	if b.stack.HasTagInButtonScope("p") {
		b.stack.GenerateImpliedEndTags("p")
		b.stack.PopTagNamed("p")
	}
}

// inBody implements the bulk of tree construction for fragment content
// (§9 "in body"): text insertion with formatting reconstruction,
// paragraph/heading/list-item auto-closing, the adoption agency for
// formatting end tags, and the generic end-tag algorithm for anything
// else.
func (b *Balancer) inBody(tok *Token) bool {
	if (tok.Kind == tagToken || tok.Kind == endTagToken) && unsupportedElements.has(tok.Name) {
		if b.strict {
			panic(newAssertionErrorf("strict mode: unsupported element <%s>", tok.Name))
		}
		b.logRecovery("unsupported element skipped", tok.Name, b.mode, b.stack.Len())
		return false
	}
	switch tok.Kind {
	case textToken:
		b.formatting.Reconstruct(b.stack)
		b.stack.InsertText(tok.Text)
		return false

	case eofToken:
		return false

	case tagToken:
		switch tok.Name {
		case "table":
			b.closePTagIfInButtonScope()
			b.insertHTMLElement(tok)
			b.mode = modeInTable
			return false

		case "p", "div", "section", "article", "aside", "blockquote",
			"details", "dd", "dt", "dl", "fieldset", "figcaption", "figure",
			"footer", "header", "hgroup", "main", "menu", "nav", "ol", "ul",
			"address", "center", "summary":
			b.closePTagIfInButtonScope()
			if tok.Name == "dd" || tok.Name == "dt" {
				b.closeDdDt()
			}
			b.insertHTMLElement(tok)
			return false

		case "h1", "h2", "h3", "h4", "h5", "h6":
			b.closePTagIfInButtonScope()
			if headingTags.has(b.stack.Current().LocalName) {
				b.stack.Pop()
			}
			b.insertHTMLElement(tok)
			return false

		case "li":
			b.closeLi()
			b.closePTagIfInButtonScope()
			b.insertHTMLElement(tok)
			return false

		case "button", "applet", "object", "marquee":
			b.closePTagIfInButtonScope()
			b.formatting.Reconstruct(b.stack)
			b.insertHTMLElement(tok)
			b.formatting.InsertMarker()
			return false

		case "a":
			b.runAdoptionAgency("a")
			b.formatting.Reconstruct(b.stack)
			n := b.insertHTMLElement(tok)
			b.formatting.Push(n)
			return false

		case "br", "img", "area", "embed", "hr", "input", "keygen", "wbr":
			b.formatting.Reconstruct(b.stack)
			b.insertHTMLElement(tok)
			b.stack.Pop()
			return false

		case "template":
			b.formatting.InsertMarker()
			b.insertHTMLElement(tok)
			b.templateModes = append(b.templateModes, b.mode)
			b.mode = modeInTemplate
			return false

		case "math":
			b.formatting.Reconstruct(b.stack)
			b.insertForeignElement(tok, MathML)
			if tok.SelfClosing {
				b.stack.Pop()
			}
			return false

		case "svg":
			b.formatting.Reconstruct(b.stack)
			b.insertForeignElement(tok, SVG)
			if tok.SelfClosing {
				b.stack.Pop()
			}
			return false

		default:
			b.formatting.Reconstruct(b.stack)
			if isFormattingTag(tok.Name) {
				n := b.insertHTMLElement(tok)
				b.formatting.Push(n)
				return false
			}
			b.insertHTMLElement(tok)
			if isVoidElement(tok.Name) || tok.SelfClosing {
				b.stack.Pop()
			}
			return false
		}

	case endTagToken:
		switch tok.Name {
		case "p":
			if !b.stack.HasTagInButtonScope("p") {
				b.logRecovery("stray </p> with no open p in scope", "p", b.mode, b.stack.Len())
				b.insertHTMLElement(&Token{Kind: tagToken, Name: "p"})
			}
			b.closePTagIfInButtonScope()
			return false

		case "li":
			if b.stack.HasTagInListItemScope("li") {
				b.stack.GenerateImpliedEndTags("li")
				b.stack.PopTagNamed("li")
			}
			return false

		case "dd", "dt":
			if b.stack.HasTagInDefaultScope(tok.Name) {
				b.stack.GenerateImpliedEndTags(tok.Name)
				b.stack.PopTagNamed(tok.Name)
			}
			return false

		case "div", "section", "article", "aside", "blockquote",
			"details", "dl", "fieldset", "figcaption", "figure",
			"footer", "header", "hgroup", "main", "menu", "nav", "ol", "ul",
			"address", "center", "summary":
			if b.stack.HasTagInDefaultScope(tok.Name) {
				b.stack.GenerateImpliedEndTags("")
				b.stack.PopTagNamed(tok.Name)
			}
			return false

		case "h1", "h2", "h3", "h4", "h5", "h6":
			if anyHeadingInScope(b.stack) {
				b.stack.GenerateImpliedEndTags("")
				b.stack.PopTag(func(n *ElementNode) bool { return headingTags.has(n.LocalName) })
			}
			return false

		case "button", "applet", "object", "marquee":
			if b.stack.HasTagInDefaultScope(tok.Name) {
				b.stack.GenerateImpliedEndTags("")
				b.stack.PopTagNamed(tok.Name)
				b.formatting.ClearToLastMarker()
			}
			return false

		case "template":
			if b.stack.Contains(b.stack.Current()) {
				b.stack.GenerateImpliedEndTagsThoroughly()
				b.stack.PopTagNamed("template")
				b.formatting.ClearToLastMarker()
				if len(b.templateModes) > 0 {
					b.mode = b.templateModes[len(b.templateModes)-1]
					b.templateModes = b.templateModes[:len(b.templateModes)-1]
				}
			}
			return false

		default:
			if isFormattingTag(tok.Name) {
				b.runAdoptionAgency(tok.Name)
				return false
			}
			// </sarcasm> falls through to here same as any other
			// unrecognized end tag: no special handling, per the HTML5
			// spec's own generic-end-tag algorithm.
			b.genericEndTag(tok.Name)
			return false
		}
	}
	return false
}

func (b *Balancer) closeDdDt() {
	for i := b.stack.Len() - 1; i > 0; i-- {
		n := b.stack.At(i)
		if n.Is("dd", "dt") {
			b.stack.GenerateImpliedEndTags("")
			b.stack.PopTagNamed(n.LocalName)
			return
		}
		if n.isSpecial() && !n.Is("address", "div", "p") {
			return
		}
	}
}

func (b *Balancer) closeLi() {
	for i := b.stack.Len() - 1; i > 0; i-- {
		n := b.stack.At(i)
		if n.Is("li") {
			b.stack.GenerateImpliedEndTags("li")
			b.stack.PopTagNamed("li")
			return
		}
		if n.isSpecial() && !n.Is("address", "div", "p") {
			return
		}
	}
}

func anyHeadingInScope(stack *OpenElementStack) bool {
	for name := range headingTags {
		if stack.HasTagInDefaultScope(name) {
			return true
		}
	}
	return false
}

// genericEndTag implements the "any other end tag" algorithm (§9): walk
// down the stack looking for a matching open element, generating
// implied end tags along the way; stop without effect if a special
// element is reached first.
func (b *Balancer) genericEndTag(name string) {
	for i := b.stack.Len() - 1; i > 0; i-- {
		node := b.stack.At(i)
		if node.Is(name) {
			b.stack.GenerateImpliedEndTags(name)
			b.stack.PopTo(i)
			b.stack.Pop()
			return
		}
		if node.isSpecial() {
			b.logRecovery("stray end tag ignored at special boundary", name, b.mode, b.stack.Len())
			return
		}
	}
	b.logRecovery("stray end tag with no matching open element", name, b.mode, b.stack.Len())
}

// inTable implements §9 "in table": table-structural start tags are
// routed to their own modes; anything else falls through to foster
// parenting via inBody, with the stack's fosterParentMode flag doing
// the actual redirection (§4.2).
func (b *Balancer) inTable(tok *Token) bool {
	switch {
	case tok.Kind == textToken:
		if tableRequiresFosterParenting(b.stack.Current()) {
			b.pendingText.reset()
			b.originalMode = b.mode
			b.mode = modeInTableText
			return true
		}
	case tok.Kind == tagToken:
		switch tok.Name {
		case "caption":
			b.stack.ClearToContext(tableScope)
			b.formatting.InsertMarker()
			b.insertHTMLElement(tok)
			b.mode = modeInCaption
			return false
		case "colgroup":
			b.stack.ClearToContext(tableScope)
			b.insertHTMLElement(tok)
			b.mode = modeInColumnGroup
			return false
		case "col":
			b.stack.ClearToContext(tableScope)
			b.insertHTMLElement(tok)
			b.insertHTMLElement(&Token{Kind: tagToken, Name: "colgroup"})
			b.mode = modeInColumnGroup
			return false
		case "tbody", "tfoot", "thead":
			b.stack.ClearToContext(tableScope)
			b.insertHTMLElement(tok)
			b.mode = modeInTableBody
			return false
		case "td", "th", "tr":
			b.stack.ClearToContext(tableScope)
			b.insertHTMLElement(&Token{Kind: tagToken, Name: "tbody"})
			b.mode = modeInTableBody
			return true
		case "table":
			if b.stack.HasTagInTableScope("table") {
				b.stack.PopTagNamed("table")
				b.resetInsertionMode()
			}
			return true
		}
	case tok.Kind == endTagToken && tok.Name == "table":
		if b.stack.HasTagInTableScope("table") {
			b.stack.PopTagNamed("table")
			b.resetInsertionMode()
		}
		return false
	case tok.Kind == eofToken:
		return false
	}

	b.stack.SetFosterParenting(true)
	again := b.inBody(tok)
	b.stack.SetFosterParenting(false)
	return again
}

func tableRequiresFosterParenting(current *ElementNode) bool {
	return current.IsInSet(HTML, tableSectionRowSet)
}

// inTableText accumulates consecutive character tokens seen while in a
// table context and decides, once a non-character token arrives,
// whether they were pure whitespace (inserted normally) or mixed
// content (foster-parented as if by "in body", §9 "in table text").
func (b *Balancer) inTableText(tok *Token) bool {
	if tok.Kind == textToken {
		b.pendingText.text += tok.Text
		if !isAllSpace(tok.Text) {
			b.pendingText.sawNonSpace = true
		}
		return false
	}

	text := b.pendingText.text
	sawNonSpace := b.pendingText.sawNonSpace
	b.pendingText.reset()
	b.mode = b.originalMode

	if text != "" {
		if sawNonSpace {
			b.stack.SetFosterParenting(true)
			b.formatting.Reconstruct(b.stack)
			b.stack.InsertText(text)
			b.stack.SetFosterParenting(false)
		} else {
			b.stack.InsertText(text)
		}
	}
	return true
}

// inCaption implements §9 "in caption".
func (b *Balancer) inCaption(tok *Token) bool {
	if tok.Kind == endTagToken && tok.Name == "caption" {
		if b.stack.HasTagInTableScope("caption") {
			b.stack.GenerateImpliedEndTags("")
			b.stack.PopTagNamed("caption")
			b.formatting.ClearToLastMarker()
			b.mode = modeInTable
		}
		return false
	}
	if tok.Kind == tagToken && (tagInSet(tok.Name, tableSectionRowSet) || tok.Name == "col" || tok.Name == "colgroup") {
		if b.stack.HasTagInTableScope("caption") {
			b.stack.GenerateImpliedEndTags("")
			b.stack.PopTagNamed("caption")
			b.formatting.ClearToLastMarker()
			b.mode = modeInTable
			return true
		}
		return false
	}
	return b.inBody(tok)
}

func tagInSet(name string, s set) bool { return s.has(name) }

// inColumnGroup implements §9 "in column group".
func (b *Balancer) inColumnGroup(tok *Token) bool {
	switch {
	case tok.Kind == textToken && isAllSpace(tok.Text):
		b.stack.Current().AppendText(tok.Text)
		return false
	case tok.Kind == tagToken && tok.Name == "col":
		b.insertHTMLElement(tok)
		b.stack.Pop()
		return false
	case tok.Kind == endTagToken && tok.Name == "colgroup":
		if b.stack.Current().Is("colgroup") {
			b.stack.Pop()
			b.mode = modeInTable
		}
		return false
	case tok.Kind == eofToken:
		if b.stack.Current().Is("colgroup") {
			b.stack.Pop()
		}
		b.mode = modeInTable
		return true
	}
	if b.stack.Current().Is("colgroup") {
		b.stack.Pop()
		b.mode = modeInTable
		return true
	}
	return false
}

// inTableBody implements §9 "in table body".
func (b *Balancer) inTableBody(tok *Token) bool {
	switch {
	case tok.Kind == tagToken && tok.Name == "tr":
		b.stack.ClearToContext(tableSectionRowSet)
		b.insertHTMLElement(tok)
		b.mode = modeInRow
		return false
	case tok.Kind == tagToken && (tok.Name == "th" || tok.Name == "td"):
		b.stack.ClearToContext(tableSectionRowSet)
		b.insertHTMLElement(&Token{Kind: tagToken, Name: "tr"})
		b.mode = modeInRow
		return true
	case tok.Kind == tagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		b.stack.ClearToContext(tableSectionRowSet)
		b.stack.Pop()
		b.mode = modeInTable
		return true
	case tok.Kind == endTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if b.stack.HasTagInTableScope(tok.Name) {
			b.stack.ClearToContext(tableSectionRowSet)
			b.stack.Pop()
			b.mode = modeInTable
		}
		return false
	case tok.Kind == tagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "table"):
		if hasTableSectionInScope(b.stack) {
			b.stack.ClearToContext(tableSectionRowSet)
			b.stack.Pop()
			b.mode = modeInTable
			return true
		}
		return false
	case tok.Kind == endTagToken && tok.Name == "table":
		if hasTableSectionInScope(b.stack) {
			b.stack.ClearToContext(tableSectionRowSet)
			b.stack.Pop()
			b.mode = modeInTable
			return true
		}
		return false
	}
	b.stack.SetFosterParenting(true)
	again := b.inTable(tok)
	b.stack.SetFosterParenting(false)
	return again
}

func hasTableSectionInScope(stack *OpenElementStack) bool {
	return stack.HasTagInTableScope("tbody") || stack.HasTagInTableScope("tfoot") || stack.HasTagInTableScope("thead")
}

// inRow implements §9 "in row".
func (b *Balancer) inRow(tok *Token) bool {
	switch {
	case tok.Kind == tagToken && (tok.Name == "th" || tok.Name == "td"):
		b.stack.ClearToContext(newSet("tr", "html", "table", "template"))
		b.insertHTMLElement(tok)
		b.mode = modeInCell
		b.formatting.InsertMarker()
		return false
	case tok.Kind == endTagToken && tok.Name == "tr":
		if b.stack.HasTagInTableScope("tr") {
			b.stack.ClearToContext(newSet("tr", "html", "table", "template"))
			b.stack.Pop()
			b.mode = modeInTableBody
		}
		return false
	case tok.Kind == tagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "table"):
		if b.stack.HasTagInTableScope("tr") {
			b.stack.ClearToContext(newSet("tr", "html", "table", "template"))
			b.stack.Pop()
			b.mode = modeInTableBody
			return true
		}
		return false
	case tok.Kind == endTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if b.stack.HasTagInTableScope(tok.Name) && b.stack.HasTagInTableScope("tr") {
			b.stack.ClearToContext(newSet("tr", "html", "table", "template"))
			b.stack.Pop()
			b.mode = modeInTableBody
			return true
		}
		return false
	case tok.Kind == endTagToken && tok.Name == "table":
		if b.stack.HasTagInTableScope("tr") {
			b.stack.ClearToContext(newSet("tr", "html", "table", "template"))
			b.stack.Pop()
			b.mode = modeInTableBody
			return true
		}
		return false
	}
	b.stack.SetFosterParenting(true)
	again := b.inTable(tok)
	b.stack.SetFosterParenting(false)
	return again
}

// inCell implements §9 "in cell".
func (b *Balancer) inCell(tok *Token) bool {
	switch {
	case tok.Kind == endTagToken && (tok.Name == "td" || tok.Name == "th"):
		if b.stack.HasTagInTableScope(tok.Name) {
			b.stack.GenerateImpliedEndTags("")
			b.stack.PopTagNamed(tok.Name)
			b.formatting.ClearToLastMarker()
			b.mode = modeInRow
		}
		return false
	case tok.Kind == tagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "td" || tok.Name == "tfoot" || tok.Name == "th" ||
		tok.Name == "thead" || tok.Name == "tr"):
		if b.stack.HasTagInTableScope("td") || b.stack.HasTagInTableScope("th") {
			b.closeCell()
			return true
		}
		return false
	case tok.Kind == endTagToken && (tok.Name == "table" || tok.Name == "tbody" || tok.Name == "tfoot" ||
		tok.Name == "thead" || tok.Name == "tr"):
		if b.stack.HasTagInTableScope(tok.Name) || b.stack.HasTagInTableScope("td") || b.stack.HasTagInTableScope("th") {
			b.closeCell()
			return true
		}
		return false
	}
	return b.inBody(tok)
}

func (b *Balancer) closeCell() {
	for _, name := range []string{"td", "th"} {
		if b.stack.HasTagInTableScope(name) {
			b.stack.GenerateImpliedEndTags("")
			b.stack.PopTagNamed(name)
			b.formatting.ClearToLastMarker()
			b.mode = modeInRow
			return
		}
	}
}

// inTemplateMode implements a reduced §9 "in template": since head/body
// content isn't in scope, template contents are processed exactly as
// in-body content, with the template bookkeeping handled by inBody's
// "template" end tag case.
func (b *Balancer) inTemplateMode(tok *Token) bool {
	if tok.Kind == eofToken {
		if len(b.templateModes) > 0 {
			b.stack.PopTagNamed("template")
			b.mode = b.templateModes[len(b.templateModes)-1]
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
			return true
		}
		return false
	}
	return b.inBody(tok)
}

// resetInsertionMode implements §9's "reset the insertion mode
// appropriately", used after a table (or similar container) is popped
// to restore the mode matching whatever container is now current.
func (b *Balancer) resetInsertionMode() {
	for i := b.stack.Len() - 1; i >= 0; i-- {
		n := b.stack.At(i)
		switch n.LocalName {
		case "td", "th":
			b.mode = modeInCell
			return
		case "tr":
			b.mode = modeInRow
			return
		case "tbody", "thead", "tfoot":
			b.mode = modeInTableBody
			return
		case "caption":
			b.mode = modeInCaption
			return
		case "colgroup":
			b.mode = modeInColumnGroup
			return
		case "table":
			b.mode = modeInTable
			return
		case "template":
			if len(b.templateModes) > 0 {
				b.mode = b.templateModes[len(b.templateModes)-1]
				return
			}
		}
		if i == 0 {
			b.mode = modeInBody
			return
		}
	}
	b.mode = modeInBody
}
