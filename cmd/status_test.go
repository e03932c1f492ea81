package cmd

import (
	"testing"
	"time"

	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCmd_Subcommands(t *testing.T) {
	cmd := getStatusCmd()
	require.NotNil(t, cmd)

	names := make([]string, 0, 4)
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	assert.ElementsMatch(t, []string{"set", "current", "history", "recent"}, names)
	assert.Contains(t, cmd.Long, "IN_PROGRESS")
}

func TestGetStatusSetCmd_Flags(t *testing.T) {
	cmd := getStatusSetCmd()

	date := cmd.Flags().Lookup("date")
	require.NotNil(t, date)
	assert.Equal(t, "d", date.Shorthand)
	assert.Equal(t, "", date.DefValue)

	comment := cmd.Flags().Lookup("comment")
	require.NotNil(t, comment)
	assert.Equal(t, "c", comment.Shorthand)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero(), "empty date means now")

	d, err = parseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDate("01/03/2025")
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.ValidationError))
}

func TestGetStatusRecentCmd(t *testing.T) {
	cmd := getStatusRecentCmd()
	assert.Equal(t, "recent", cmd.Use)
	require.Error(t, cmd.Args(cmd, []string{"12"}))
	require.NoError(t, cmd.Args(cmd, nil))

	limit := cmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "20", limit.DefValue)
}
