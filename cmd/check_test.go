package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCheckCmd_HelpText(t *testing.T) {
	cmd := getCheckCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "check", cmd.Use)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	helpText := buf.String()
	assert.Contains(t, helpText, "ANALYZE")
	assert.Contains(t, helpText, "safe")
	assert.Contains(t, helpText, "capexdb check")
}
