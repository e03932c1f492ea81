package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetImportCmd_Exists(t *testing.T) {
	cmd := getImportCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "import", cmd.Name())
	assert.Contains(t, cmd.Short, "CSV")
	assert.NotNil(t, cmd.RunE)
}

// TestGetImportCmd_Flags verifies flags and their short forms.
func TestGetImportCmd_Flags(t *testing.T) {
	cmd := getImportCmd()

	tests := []struct {
		name, short, def string
	}{
		{"overwrite", "o", "false"},
		{"quiet", "q", "false"},
		{"rank", "r", "false"},
		{"template", "t", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.short, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

// TestGetImportCmd_HelpText verifies columns and examples are documented.
func TestGetImportCmd_HelpText(t *testing.T) {
	cmd := getImportCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "asset_code, project_scope")
	assert.Contains(t, helpText, "Row N: message")
	assert.Contains(t, helpText, "capexdb import --template plan.csv")
	assert.Contains(t, helpText, "Examples:")
}

func TestGetImportCmd_TooManyArgs(t *testing.T) {
	cmd := getImportCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"a.csv", "b.csv"})

	assert.Error(t, cmd.Execute())
}
