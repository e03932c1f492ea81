package capex_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateAssetError_Structure(t *testing.T) {
	err := capex.DuplicateAssetError("CD-2-001")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DuplicateAssetError, gnErr.Code)
	assert.Equal(t, []any{"CD-2-001"}, gnErr.Vars)
	assert.Equal(t,
		"Asset CD-2-001 already exists. Use overwrite option to replace.",
		capex.Message(err))
}

func TestReferentialIntegrityError_Structure(t *testing.T) {
	err := capex.ReferentialIntegrityError("asset class", "Meters", 2, "asset types")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReferentialIntegrityError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 4)
	assert.Equal(t,
		"Cannot delete asset class Meters, it is used by 2 asset types",
		capex.Message(err))
}

func TestPersistenceError_Structure(t *testing.T) {
	orig := errors.New("disk I/O error")
	err := capex.PersistenceError("save project", orig)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.PersistenceError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, orig)
	assert.Equal(t, "Cannot save project, no changes were saved", capex.Message(err))
}

func TestStoreUnavailableError_Structure(t *testing.T) {
	orig := errors.New("connection refused")
	err := capex.StoreUnavailableError(orig)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.StoreUnavailableError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, orig)
	assert.Equal(t, "Planning database is not reachable", capex.Message(err))
}

func TestValidationAndNotFound(t *testing.T) {
	err := capex.ValidationError("whs_score", `"high" is not a number`)
	assert.True(t, errcode.Is(err, errcode.ValidationError))
	assert.Equal(t, `Invalid whs_score: "high" is not a number`, capex.Message(err))

	err = capex.NotFoundError("project", "42")
	assert.True(t, errcode.Is(err, errcode.NotFoundError))
	assert.Equal(t, "Cannot find project 42", capex.Message(err))
}

func TestRowError(t *testing.T) {
	re := capex.RowError{Row: 2, Err: capex.DuplicateAssetError("X-1")}
	assert.Equal(t,
		"Row 2: Asset X-1 already exists. Use overwrite option to replace.",
		re.String())

	re = capex.RowError{Row: 7, Err: errors.New("plain")}
	assert.Equal(t, "Row 7: plain", re.String())
	assert.Equal(t, "", capex.Message(nil))
}
