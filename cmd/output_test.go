package cmd

import (
	"testing"

	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Rank", "Asset"},
		[][]string{{"1", "CD-2-002"}, {"2", "CD-2-001"}},
	)
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "CD-2-002")
	assert.Contains(t, out, "CD-2-001")
}

func TestFormatters(t *testing.T) {
	rank := 3
	assert.Equal(t, "3", formatRank(&rank))
	assert.Equal(t, "-", formatRank(nil))
	assert.Equal(t, "7.7", formatFloat(7.7))
	assert.Equal(t, "35", formatFloat(35))
	assert.Equal(t, "12", formatUint(12))
	assert.Contains(t, formatMoney(1234567), "1,234,567")
}

func TestParseID(t *testing.T) {
	id, err := parseID("project id", "12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, v := range []string{"0", "-1", "abc", ""} {
		_, err = parseID("project id", v)
		require.Error(t, err, v)
		assert.True(t, errcode.Is(err, errcode.ValidationError))
	}
}
