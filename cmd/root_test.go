package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "capexdb", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE, "bootstrap is wired")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	for _, v := range []string{
		"Schema Management",
		"Bulk Import",
		"Risk Rating",
		"Status History",
		"PostgreSQL",
	} {
		assert.Contains(t, cmd.Long, v)
	}
	assert.NotSame(t, cmd, getRootCmd())
}

// TestGetRootCmd_Version checks both version flags print the raw
// version string without cobra's "capexdb version" prefix.
func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v0.4.1\nbuild:   f00dcafe"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})
			require.NoError(t, cmd.Execute())

			out := buf.String()
			assert.Contains(t, out, "v0.4.1")
			assert.Contains(t, out, "f00dcafe")
			assert.NotContains(t, out, "capexdb version")
		})
	}
}

func TestGetRootCmd_HelpText(t *testing.T) {
	text := helpText(t, getRootCmd())
	for _, v := range []string{"capexdb", "CAPEX", "Priority Scoring", "CAPEXDB_"} {
		assert.Contains(t, text, v)
	}
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, v := range getRootCmd().Commands() {
		names[v.Name()] = true
	}
	for _, v := range []string{
		"create", "migrate", "import", "project", "criteria",
		"risk", "status", "cost", "ref", "report", "check",
	} {
		assert.True(t, names[v], "missing subcommand %s", v)
	}
}

func TestGetRootCmd_UnknownCommand(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"rebalance"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
