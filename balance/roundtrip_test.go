package balance_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KylieStarzz/mediawiki/balance"
)

// renderFragment feeds frag through golang.org/x/net/html's conformant
// fragment parser (in a <body> context) and re-serializes it, giving an
// independent check that our balanced output is itself well-formed
// HTML5 that a real parser reconstructs byte-for-byte. html.Render
// writes void elements as "<br/>"; that "/>" is mapped back to ">", the
// HTML serialization Balance uses. Render escapes '>' in text and
// attribute values, so "/>" occurs in its output only as that syntax.
func renderFragment(t *testing.T, frag string) string {
	t.Helper()
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(frag), ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, n := range nodes {
		require.NoError(t, html.Render(&buf, n))
	}
	return strings.ReplaceAll(buf.String(), "/>", ">")
}

func TestBalanceOutputRoundTripsThroughConformantParser(t *testing.T) {
	inputs := []string{
		"<b>1<i>2</b>3</i>",
		"<p><div>x</div></p>",
		"<ul><li>a<li>b</ul>",
		"<a>1<a>2</a>3</a>",
		`<p>line one<br>line two<img src="x.png">`,
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			balanced, err := balance.Balance(in, nil, nil)
			require.NoError(t, err)

			reparsed := renderFragment(t, balanced)
			require.Equal(t, balanced, reparsed, "balanced output should already be a fixed point of conformant parsing")
		})
	}
}
