package balance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KylieStarzz/mediawiki/balance"
)

func TestBalanceScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adoption agency untangles b-i misnesting",
			input: "<b>1<i>2</b>3</i>",
			want:  "<b>1<i>2</i></b><i>3</i>",
		},
		{
			name:  "block inside p closes the paragraph",
			input: "<p><div>x</div></p>",
			want:  "<p></p><div>x</div><p></p>",
		},
		{
			name:  "non-table content foster-parented out of table",
			input: "<table><b>x</b><tr><td>y</td></tr></table>",
			want:  "<b>x</b><table><tbody><tr><td>y</td></tr></tbody></table>",
		},
		{
			name:  "adoption agency for nested a",
			input: "<a>1<a>2</a>3</a>",
			want:  "<a>1</a><a>2</a>3",
		},
		{
			name:  "implied li closing",
			input: "<ul><li>a<li>b</ul>",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "mathml namespace preserved",
			input: "<math><mi>x</mi></math>",
			want:  "<math><mi>x</mi></math>",
		},
		{
			name:  "mathml breakout on html block content",
			input: "<math><p>x</p></math>",
			want:  "<math></math><p>x</p>",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := balance.Balance(tc.input, nil, nil)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBalanceIdempotent(t *testing.T) {
	inputs := []string{
		"<b>1<i>2</b>3</i>",
		"<p><div>x</div></p>",
		"<table><b>x</b><tr><td>y</td></tr></table>",
		"<a>1<a>2</a>3</a>",
		"<ul><li>a<li>b</ul>",
		"<math><mi>x</mi></math>",
		"plain text with no tags at all",
		"<div><span>nested <b>formatting</b> stays put</span></div>",
		`<a href="a&amp;b&lt;c">already-escaped entities</a>`,
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			once, err := balance.Balance(in, nil, nil)
			require.NoError(t, err)
			twice, err := balance.Balance(once, nil, nil)
			require.NoError(t, err)
			require.Equal(t, once, twice)
		})
	}
}

func TestBalanceVoidElements(t *testing.T) {
	got, err := balance.Balance("<p>line one<br>line two<img src=\"x.png\">", nil, nil)
	require.NoError(t, err)
	require.Equal(t, `<p>line one<br>line two<img src="x.png"></p>`, got)
}

func TestBalanceEscapesDisallowedElements(t *testing.T) {
	b, err := balance.New(balance.WithAllowedHTMLElements("p", "b"))
	require.NoError(t, err)

	got, err := b.Balance("<p>hi <marquee>scroll</marquee></p>", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "<p>hi &lt;marquee&gt;scroll&lt;/marquee&gt;</p>", got)
}

func TestBalanceStrictModeReturnsErrorRatherThanCrashing(t *testing.T) {
	b, err := balance.New(balance.WithStrict())
	require.NoError(t, err)

	_, err = b.Balance("a < b", nil, nil)
	require.Error(t, err)

	var assertErr *balance.AssertionError
	require.ErrorAs(t, err, &assertErr)
}

func TestBalanceStrictModeRejectsNonCanonicalAttrs(t *testing.T) {
	b, err := balance.New(balance.WithStrict())
	require.NoError(t, err)

	_, err = b.Balance(`<p class=unquoted>hi</p>`, nil, nil)
	require.Error(t, err)

	var assertErr *balance.AssertionError
	require.ErrorAs(t, err, &assertErr)
}

func TestWithAllowedHTMLElementsRejectsUnsupported(t *testing.T) {
	_, err := balance.New(balance.WithAllowedHTMLElements("p", "script"))
	require.Error(t, err)

	var cfgErr *balance.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBalanceCallbackMutatesAttributes(t *testing.T) {
	cb := func(attrs *string, args interface{}) {
		suffix, _ := args.(string)
		*attrs += " data-tag=\"" + suffix + "\""
	}

	got, err := balance.Balance(`<p class="a">hi</p>`, cb, "marked")
	require.NoError(t, err)
	require.Equal(t, `<p class="a" data-tag="marked">hi</p>`, got)
}
