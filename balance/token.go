package balance

import (
	"regexp"
	"strings"
	"sync"
)

// tokenKind distinguishes the token shapes the dispatcher emits (§4.6):
// tag, end tag, text, and eof, plus errorToken below. There is no
// comment/doctype token: the input contract (§6) guarantees comments
// never appear and null bytes never appear, so the tokenizer only ever
// needs to recognize tags, end tags, and text.
type tokenKind uint8

const (
	tagToken tokenKind = iota
	endTagToken
	textToken
	eofToken
	// errorToken carries a strict-mode assertion failure from the
	// tokenizer goroutine back to the consumer goroutine, where it is
	// re-panicked so Balance's recover (§7 category 1) can convert it
	// into a returned *AssertionError instead of crashing the process.
	errorToken
)

// Token is a single unit handed from the Tokenizer to the Dispatcher.
type Token struct {
	Kind        tokenKind
	Name        string // lowercased tag name; empty for text/eof
	Attrs       string // canonical attribute string; empty unless Kind == tagToken
	SelfClosing bool
	Text        string // Kind == textToken
	Err         *AssertionError // Kind == errorToken
}

// ProcessingCallback lets a host mutate a tag's pre-normalization
// attribute string in place — e.g. to perform template/variable
// substitution — before attribute normalization runs (§6 Operation).
type ProcessingCallback func(attrs *string, args interface{})

// AttrNormalizer returns a canonical, sorted, double-quoted attribute
// string for a raw (host-supplied, post-callback) attribute fragment
// (§1 "attribute-normalization function"). The default implementation
// lives in attrnorm.go.
type AttrNormalizer func(raw string) string

// tagPattern extracts (slash, name, attrs, brace, rest) from the text
// following a '<' delimiter, per §4.6. The name class allows '-' so
// hyphenated names like MathML's annotation-xml tokenize correctly.
var tagPattern = regexp.MustCompile(`^(/?)([a-zA-Z][a-zA-Z0-9-]*)((?:\s[^>]*)?)\s*(/?)>([\s\S]*)$`)

// canonicalAttrPattern matches the canonical attribute-string grammar
// (§6 Configuration: `(" " NAME "=" '"' VALUE '"')* " "*`) that strict
// mode asserts the raw attribute fragment already conforms to.
var canonicalAttrPattern = regexp.MustCompile(`^(?:\s[a-zA-Z][a-zA-Z0-9-]*="[^"]*")*\s*$`)

// Tokenizer is the (deliberately trivial) tokenizer this engine treats as
// an input iterator (§1 Out of scope: "Token extraction reduces to
// splitting on `<` and applying a single regular expression per
// fragment"). It is driven from its own goroutine and hands tokens to a
// Dispatcher over a channel, mirroring the producer/consumer pipeline the
// teacher repo uses to drive its tree constructor from its tokenizer.
type Tokenizer struct {
	input      string
	callback   ProcessingCallback
	args       interface{}
	allowed    set // nil means no allow-list configured
	normalize  AttrNormalizer
	strict     bool
}

func newTokenizer(input string, cb ProcessingCallback, args interface{}, allowed set, normalize AttrNormalizer, strict bool) *Tokenizer {
	return &Tokenizer{
		input:     input,
		callback:  cb,
		args:      args,
		allowed:   allowed,
		normalize: normalize,
		strict:    strict,
	}
}

// Run splits the input on '<' and emits to out a text token for any
// text before the first '<', then for each chunk either a tag or end
// tag token followed by a text token for any trailing text, or the
// chunk as escaped text; then a final eof token, and calls wg.Done().
// It never sends on out after emitting eofToken.
//
// Run executes on its own goroutine, so a strict-mode assertion raised
// while scanning must not simply panic here: an unrecovered panic on a
// non-main goroutine terminates the whole process rather than
// returning an error to the caller. Instead Run recovers it and hands
// it to the consumer as an errorToken, which the consumer re-panics on
// its own goroutine where Balance's recover is installed.
func (t *Tokenizer) Run(out chan<- *Token, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(*AssertionError)
			if !ok {
				panic(r)
			}
			out <- &Token{Kind: errorToken, Err: ae}
		}
	}()

	pieces := strings.Split(t.input, "<")
	if len(pieces[0]) > 0 {
		out <- &Token{Kind: textToken, Text: pieces[0]}
	}

	for _, chunk := range pieces[1:] {
		t.emitChunk(chunk, out)
	}

	out <- &Token{Kind: eofToken}
}

func (t *Tokenizer) emitChunk(chunk string, out chan<- *Token) {
	m := tagPattern.FindStringSubmatch(chunk)
	if m == nil {
		if t.strict {
			panic(newAssertionError("strict mode: unescaped '<' not starting a tag"))
		}
		out <- &Token{Kind: textToken, Text: "&lt;" + escapeStrayAngleBrackets(chunk)}
		return
	}

	slash, name, rawAttrs, brace, rest := m[1], strings.ToLower(m[2]), m[3], m[4], m[5]

	if t.callback != nil {
		t.callback(&rawAttrs, t.args)
	}

	if t.strict && slash == "" && !canonicalAttrPattern.MatchString(rawAttrs) {
		panic(newAssertionErrorf("strict mode: attribute string %q is not in canonical form", rawAttrs))
	}

	if t.allowed != nil && !t.allowed.has(name) {
		literal := "<" + slash + m[2] + rawAttrs + brace + ">"
		out <- &Token{Kind: textToken, Text: escapeStrayAngleBrackets(literal)}
		if rest != "" {
			out <- &Token{Kind: textToken, Text: escapeUnbalancedCloseAngle(rest)}
		}
		return
	}

	attrs := ""
	if slash == "" {
		attrs = t.normalize(rawAttrs)
	}

	if slash != "" {
		out <- &Token{Kind: endTagToken, Name: name}
	} else {
		out <- &Token{Kind: tagToken, Name: name, Attrs: attrs, SelfClosing: brace == "/"}
	}

	if rest != "" {
		out <- &Token{Kind: textToken, Text: escapeUnbalancedCloseAngle(rest)}
	}
}

// escapeStrayAngleBrackets escapes both '<' and '>' in text that the
// dispatcher decided was never a real tag (§4.6).
func escapeStrayAngleBrackets(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// escapeUnbalancedCloseAngle escapes a literal '>' in trailing text so it
// can never be mistaken for closing a tag once re-serialized (§4.6
// "emit the trailing rest as text with unbalanced `>` entity-escaped").
func escapeUnbalancedCloseAngle(s string) string {
	return strings.ReplaceAll(s, ">", "&gt;")
}
