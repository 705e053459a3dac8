package balance

// Static element-classification tables. These are immutable after package
// init and may be shared freely across concurrently running Balancers.

// set is a tiny string-set. A map reads better than a long switch
// statement once a table grows past a handful of entries.
type set map[string]struct{}

func newSet(names ...string) set {
	s := make(set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

// voidElements never have an end tag and never have children (§4.1).
var voidElements = newSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
)

// unsupportedElements are the elements this engine refuses to support at
// all (§1 Non-goals). A host's allow-list must not reintroduce any of
// these (§6 Configuration).
var unsupportedElements = newSet(
	"html", "head", "body", "frameset", "form", "frame", "plaintext",
	"isindex", "textarea", "xmp", "iframe", "noembed", "noscript",
	"select", "script", "title",
)

// specialSet forces paragraph closure and terminates the adoption
// agency's furthest-block search (§4.4 step 10, glossary "special set").
var specialSet = newSet(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "body", "br", "button", "caption", "center",
	"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
	"fieldset", "figcaption", "figure", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
	"link", "listing", "main", "marquee", "menu", "meta", "nav",
	"noembed", "noframes", "noscript", "object", "ol", "p", "param",
	"plaintext", "pre", "script", "section", "select", "source", "style",
	"summary", "table", "tbody", "td", "template", "textarea", "tfoot",
	"th", "thead", "tr", "track", "ul", "wbr",
	// foreign-namespace members of the special set
	"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
	"foreignObject", "desc", "title",
)

// formattingTags are the elements the adoption agency algorithm handles
// on their end tag (§4.4).
var formattingTags = newSet(
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
	"strike", "strong", "tt", "u",
)

// headingTags lets popTag treat any heading as a single target, per the
// open question in §9: the reference implementation pops through the
// topmost heading regardless of which specific hN end tag arrived.
var headingTags = newSet("h1", "h2", "h3", "h4", "h5", "h6")

// defaultScope is the baseline "in scope" boundary (§4.2).
var defaultScope = newSet(
	"applet", "caption", "html", "marquee", "object", "table", "td",
	"template", "th",
	"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
	"foreignObject", "desc", "title",
)

var listItemScope = unionSets(defaultScope, newSet("ol", "ul"))
var buttonScope = unionSets(defaultScope, newSet("button"))
var tableScope = newSet("html", "table", "template")

func unionSets(sets ...set) set {
	out := make(set)
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

// impliedEndTags are popped implicitly before certain insertions (§4.2).
var impliedEndTags = newSet("dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc")

// impliedEndTagsThorough is impliedEndTags plus the table-structural
// elements, used by the "thoroughly" variant (§4.2).
var impliedEndTagsThorough = unionSets(impliedEndTags, newSet(
	"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr",
))

// tableSectionRowSet identifies the current-node contexts that trigger
// foster-parenting (§4.2 Insertion point).
var tableSectionRowSet = newSet("table", "tbody", "tfoot", "thead", "tr")

// foreignBreakoutSet is the HTML-like start tags that force foreign
// content back into HTML processing (§4.5 "Foreign start tags").
var foreignBreakoutSet = newSet(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)

// mathMLTextIntegrationPoints is the MathML text integration point set
// (§4.1).
var mathMLTextIntegrationPoints = newSet("mi", "mo", "mn", "ms", "mtext")

// svgHTMLIntegrationPoints is the SVG half of the HTML integration point
// set (§4.1).
var svgHTMLIntegrationPoints = newSet("foreignObject", "desc", "title")

func isSpecial(localName string) bool    { return specialSet.has(localName) }
func isFormattingTag(name string) bool   { return formattingTags.has(name) }
func isVoidElement(name string) bool     { return voidElements.has(name) }
func isForeignBreakout(name string) bool { return foreignBreakoutSet.has(name) }
