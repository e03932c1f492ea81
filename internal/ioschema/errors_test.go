package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("constraint failed")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError, nil},
		{"migrate", MigrateSchemaError(cause), errcode.SchemaMigrateError, nil},
		{"seed data", SeedDataError(cause), errcode.SchemaSeedDataError, nil},
		{"seed", SeedError("criteria", cause), errcode.SchemaSeedError,
			[]any{"criteria"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}
}

func TestNotConnectedError(t *testing.T) {
	var gnErr *gn.Error
	require.ErrorAs(t, NotConnectedError(), &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, errNotConnected)
}
