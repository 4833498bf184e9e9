package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	tr := trade("2024-03-15", "250", "1250")
	tr.Position = "TQQQ"
	tr.Notes = "trend day\nheld to close"

	result := FormatTradeOrg(3, tr)

	assert.True(t, strings.HasPrefix(result, "** Trade 3: TQQQ 03/15/24\n"))
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":DATE: 03/15/24")
	assert.Contains(t, result, ":POSITION: TQQQ")
	assert.Contains(t, result, ":TYPE: Stock")
	assert.Contains(t, result, ":PL: 250.00")
	assert.Contains(t, result, ":ACCOUNT_VALUE: 1250.00")
	assert.Contains(t, result, ":END:")
	assert.NotContains(t, result, ":VALUE:")
	assert.Contains(t, result, "- trend day\n- held to close\n")
}

func TestFormatTradeOrgNegativePL(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(1, trade("2024-03-15", "-500", "-500"))
	assert.Contains(t, result, ":PL: -500.00")
	assert.Contains(t, result, "(no position)")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	result := FormatTradesOrg(Ledger{
		trade("2024-01-10", "200", "200"),
		trade("2024-01-11", "-100", "100"),
	})

	assert.Contains(t, result, "** Trade 1:")
	assert.Contains(t, result, "** Trade 2:")
	parts := strings.Split(result, ":END:\n\n")
	require.Len(t, parts, 2)
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, FormatTradesOrg(nil))
}
