package capex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// ValidationError is returned for a missing or malformed field.
func ValidationError(field, reason string) error {
	msg := "Invalid <em>%s</em>: %s"
	vars := []any{field, reason}
	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid %s: %s", field, reason),
	}
}

// DuplicateAssetError is returned when an asset code exists and
// overwrite was not requested.
func DuplicateAssetError(code string) error {
	msg := "Asset <em>%s</em> already exists. Use overwrite option to replace."
	vars := []any{code}
	return &gn.Error{
		Code: errcode.DuplicateAssetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("asset %q already exists", code),
	}
}

// DuplicateNameError is returned when a rename would make two
// references of one scope differ only in letter case.
func DuplicateNameError(cat, name string) error {
	return &gn.Error{
		Code: errcode.DuplicateNameError,
		Msg:  "A %s named <em>%s</em> already exists",
		Vars: []any{cat, name},
		Err:  fmt.Errorf("%s %q already exists", cat, name),
	}
}

// ReferentialIntegrityError is returned when a row to delete is in use.
func ReferentialIntegrityError(
	entity, name string,
	count int64,
	usedBy string,
) error {
	msg := "Cannot delete %s <em>%s</em>, it is used by %d %s"
	vars := []any{entity, name, count, usedBy}
	return &gn.Error{
		Code: errcode.ReferentialIntegrityError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s %q is referenced by %d %s",
			entity, name, count, usedBy),
	}
}

// PersistenceError is returned when the store rejects an operation.
// Nothing of the operation is saved.
func PersistenceError(op string, err error) error {
	msg := "Cannot %s, no changes were saved"
	vars := []any{op}
	return &gn.Error{
		Code: errcode.PersistenceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}

// StoreUnavailableError is returned when the store cannot be reached.
func StoreUnavailableError(err error) error {
	msg := "<err>Planning database is not reachable</err>"
	return &gn.Error{
		Code: errcode.StoreUnavailableError,
		Msg:  msg,
		Err:  fmt.Errorf("store unavailable: %w", err),
	}
}

// NotFoundError is returned when a looked up row does not exist.
func NotFoundError(entity, key string) error {
	msg := "Cannot find %s <em>%s</em>"
	vars := []any{entity, key}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s %q not found", entity, key),
	}
}

var markup = strings.NewReplacer(
	"<em>", "", "</em>", "",
	"<err>", "", "</err>", "",
	"<warn>", "", "</warn>", "",
	"<title>", "", "</title>", "",
)

// Message renders the user-facing text of an error without markup.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Msg != "" {
		return markup.Replace(fmt.Sprintf(gnErr.Msg, gnErr.Vars...))
	}
	return err.Error()
}
