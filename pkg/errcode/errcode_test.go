package errcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	gnErr := &gn.Error{
		Code: errcode.DuplicateAssetError,
		Msg:  "duplicate",
		Err:  errors.New("duplicate"),
	}

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		res  bool
	}{
		{"same code", gnErr, errcode.DuplicateAssetError, true},
		{"other code", gnErr, errcode.ValidationError, false},
		{"wrapped", fmt.Errorf("row 2: %w", gnErr), errcode.DuplicateAssetError, true},
		{"plain error", errors.New("boom"), errcode.DuplicateAssetError, false},
		{"nil", nil, errcode.DuplicateAssetError, false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, errcode.Is(v.err, v.code), v.msg)
	}
}
