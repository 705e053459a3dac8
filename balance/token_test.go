package balance

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runTokenizer(t *testing.T, tz *Tokenizer) []*Token {
	t.Helper()
	out := make(chan *Token)
	var wg sync.WaitGroup
	wg.Add(1)
	go tz.Run(out, &wg)

	var got []*Token
	for tok := range out {
		got = append(got, tok)
		if tok.Kind == eofToken || tok.Kind == errorToken {
			break
		}
	}
	wg.Wait()
	return got
}

func TestTokenizerEmitsTagsAndText(t *testing.T) {
	tz := newTokenizer(`hi <b class="x">bold</b> there`, nil, nil, nil, DefaultAttrNormalizer, false)
	toks := runTokenizer(t, tz)

	if toks[0].Kind != textToken || toks[0].Text != "hi " {
		t.Fatalf("want leading text token, got %+v", toks[0])
	}
	if toks[1].Kind != tagToken || toks[1].Name != "b" {
		t.Fatalf("want <b> tag token, got %+v", toks[1])
	}
	if toks[len(toks)-1].Kind != eofToken {
		t.Fatal("want a trailing eof token")
	}
}

func TestTokenizerRejectsDisallowedElementAsText(t *testing.T) {
	tz := newTokenizer(`<script>alert(1)</script>`, nil, nil, newSet("p", "b"), DefaultAttrNormalizer, false)
	toks := runTokenizer(t, tz)

	if toks[0].Kind != textToken {
		t.Fatalf("disallowed tag should be emitted as escaped text, got %+v", toks[0])
	}
	if toks[0].Text != "&lt;script&gt;" {
		t.Fatalf("want escaped literal opening tag, got %q", toks[0].Text)
	}
}

func TestTokenizerStrictModeForwardsStrayAngleBracketAsErrorToken(t *testing.T) {
	tz := newTokenizer(`a < b`, nil, nil, nil, DefaultAttrNormalizer, true)
	toks := runTokenizer(t, tz)

	last := toks[len(toks)-1]
	if last.Kind != errorToken {
		t.Fatalf("want an errorToken from the tokenizer goroutine, got %+v", last)
	}
	if last.Err == nil {
		t.Fatal("errorToken must carry a non-nil *AssertionError")
	}
}

func TestTokenizerStrictModeRejectsNonCanonicalAttrs(t *testing.T) {
	tz := newTokenizer(`<p class=a>hi</p>`, nil, nil, nil, DefaultAttrNormalizer, true)
	toks := runTokenizer(t, tz)

	last := toks[len(toks)-1]
	if last.Kind != errorToken {
		t.Fatalf("want an errorToken for a non-canonical (unquoted) attribute string, got %+v", last)
	}
}

func TestTokenizerStrictModeAcceptsCanonicalAttrs(t *testing.T) {
	tz := newTokenizer(`<p class="a">hi</p>`, nil, nil, nil, DefaultAttrNormalizer, true)
	toks := runTokenizer(t, tz)

	for _, tok := range toks {
		if tok.Kind == errorToken {
			t.Fatalf("canonical attribute string should not raise a strict-mode assertion, got %+v", tok)
		}
	}
}

func TestTokenizerNonStrictEscapesStrayAngleBracket(t *testing.T) {
	tz := newTokenizer(`a < b`, nil, nil, nil, DefaultAttrNormalizer, false)
	toks := runTokenizer(t, tz)

	if toks[1].Text != "&lt; b" {
		t.Fatalf("want escaped stray '<', got %+v", toks[1])
	}
}

func TestTokenizerFullTokenStreamMatchesExpected(t *testing.T) {
	tz := newTokenizer(`<b id="x">hi</b>`, nil, nil, nil, DefaultAttrNormalizer, false)
	got := runTokenizer(t, tz)

	want := []*Token{
		{Kind: tagToken, Name: "b", Attrs: ` id="x"`},
		{Kind: textToken, Text: "hi"},
		{Kind: endTagToken, Name: "b"},
		{Kind: eofToken},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerCallbackMutatesAttrsBeforeNormalization(t *testing.T) {
	cb := func(attrs *string, args interface{}) {
		*attrs += ` data-injected="1"`
	}
	tz := newTokenizer(`<p class="a">hi</p>`, cb, nil, nil, DefaultAttrNormalizer, false)
	toks := runTokenizer(t, tz)

	if toks[0].Attrs != ` class="a" data-injected="1"` {
		t.Fatalf("want callback-mutated, normalized attrs, got %q", toks[0].Attrs)
	}
}
