package cmd

import (
	"testing"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReportCmd(t *testing.T) {
	cmd := getReportCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "report", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "IN_PROGRESS or DESIGN")

	require.Len(t, cmd.Commands(), 1)
	assert.Equal(t, "program", cmd.Commands()[0].Name())
}

func TestGetReportProgramCmd(t *testing.T) {
	cmd := getReportProgramCmd()
	require.Error(t, cmd.Args(cmd, []string{"3"}))

	years := cmd.Flags().Lookup("years")
	require.NotNil(t, years)
	assert.Equal(t, "3", years.DefValue)
	assert.Equal(t, "y", years.Shorthand)
	assert.NotNil(t, cmd.Flags().Lookup("from"))
}

func TestProgramRows(t *testing.T) {
	headers, rows := programRows(capex.Program{
		Years: []string{"FY 24-25", "FY 25-26"},
		Rows: []capex.ProgramRow{
			{AssetClass: "Meters", Amounts: []float64{0, 1500}, Total: 1500},
		},
		YearTotals: []float64{0, 1500},
		Total:      1500,
	})
	assert.Equal(t,
		[]string{"Asset class", "FY 24-25", "FY 25-26", "Total"}, headers)
	assert.Equal(t, [][]string{
		{"Meters", "0", "1,500", "1,500"},
		{"Total", "0", "1,500", "1,500"},
	}, rows)
}

func TestCountRows(t *testing.T) {
	rows := countRows([]capex.Count{
		{Label: "Regulators", Count: 1200},
		{Label: "Outlets", Count: 3},
	})
	assert.Equal(t, [][]string{
		{"Regulators", "1,200"},
		{"Outlets", "3"},
	}, rows)
}
