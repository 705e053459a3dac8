package balance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KylieStarzz/mediawiki/balance"
)

func TestBalanceSVGBreakoutOnHTMLBlockTag(t *testing.T) {
	got, err := balance.Balance("<svg><li>x</li>", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "<svg></svg><li>x</li>", got)
}

func TestBalanceTableCaptionAndColumnGroup(t *testing.T) {
	got, err := balance.Balance("<table><caption>Title</caption><colgroup><col></colgroup><tr><td>x</td></tr></table>", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "<table><caption>Title</caption><colgroup><col></colgroup><tbody><tr><td>x</td></tr></tbody></table>", got)
}

func TestBalanceSVGDescIsHTMLIntegrationPoint(t *testing.T) {
	got, err := balance.Balance(`<svg><desc><p>x</p></desc></svg>`, nil, nil)
	require.NoError(t, err)
	require.Equal(t, `<svg><desc><p>x</p></desc></svg>`, got)
}
