package tabular_test

import (
	"testing"
	"unicode/utf8"

	"github.com/odysseus-imc/capexdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnKey(t *testing.T) {
	assert.Equal(t, "asset_code", tabular.ColumnKey(" Asset  Code "))
	assert.Equal(t, "whs_score", tabular.ColumnKey("WHS_Score"))
	assert.Equal(t, "", tabular.ColumnKey("  "))
}

func TestTable(t *testing.T) {
	tbl := tabular.New(
		[]string{"Asset Code", "project_scope", "whs_score", "Asset Code"},
		[][]string{
			{"CD-1", " Replace gates ", "8", "ignored"},
			{"CD-2", "", "1,200.5"},
			{"CD-3", "Scope", "high"},
		},
	)

	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.Has("asset_code"))
	assert.True(t, tbl.Has("PROJECT SCOPE"))
	assert.Equal(t, []string{"design_status"},
		tbl.Missing("asset_code", "design_status"))

	r := tbl.Row(0)
	s, ok := r.Text("asset_code")
	assert.True(t, ok)
	assert.Equal(t, "CD-1", s)

	s, ok = r.Text("project_scope")
	assert.True(t, ok)
	assert.Equal(t, "Replace gates", s)

	f, ok, err := r.Float("whs_score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 8.0, f)

	r = tbl.Row(1)
	_, ok = r.Text("project_scope")
	assert.False(t, ok, "blank cell")
	f, _, err = r.Float("whs_score")
	require.NoError(t, err)
	assert.Equal(t, 1200.5, f)

	_, ok, err = r.Float("customer_score")
	assert.NoError(t, err)
	assert.False(t, ok, "missing column")

	r = tbl.Row(2)
	_, ok, err = r.Float("whs_score")
	assert.True(t, ok)
	assert.ErrorContains(t, err, `"high" is not a number`)
}

func TestShortRow(t *testing.T) {
	tbl := tabular.New([]string{"a", "b"}, [][]string{{"1"}})
	_, ok := tbl.Row(0).Text("b")
	assert.False(t, ok)
}

func TestFloat_NotFinite(t *testing.T) {
	tbl := tabular.New([]string{"whs_score"},
		[][]string{{"Inf"}, {"-infinity"}, {"NaN"}, {"1e400"}})
	for i := range tbl.Len() {
		_, ok, err := tbl.Row(i).Float("whs_score")
		assert.True(t, ok)
		assert.ErrorContains(t, err, "not a", "row %d", i)
	}
}

func TestText_InvalidUTF8(t *testing.T) {
	tbl := tabular.New([]string{"description"},
		[][]string{{"Culvert \xff\xfe under road"}})
	s, ok := tbl.Row(0).Text("description")
	assert.True(t, ok)
	assert.True(t, utf8.ValidString(s))
	assert.Contains(t, s, "Culvert")
	assert.Contains(t, s, "under road")
}
