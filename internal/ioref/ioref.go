// Package ioref implements capex.Resolver. Reference names are matched
// case-insensitively through the NameKey column and created on first use
// with a single insert-if-absent statement.
package ioref

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resolver struct {
	operator db.Operator
}

// New creates a Resolver working on the operator's store.
func New(op db.Operator) capex.Resolver {
	return &resolver{operator: op}
}

// ResolveOrCreate runs Resolve in its own transaction.
func (r *resolver) ResolveOrCreate(
	ctx context.Context,
	cat capex.Category,
	name string,
	parentID uint,
) (uint, error) {
	gdb := r.operator.DB()
	if gdb == nil {
		return 0, capex.StoreUnavailableError(errors.New("not connected"))
	}

	var res uint
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = Resolve(tx, cat, name, parentID)
		return err
	})
	return res, err
}

// Resolve returns the id of a reference, creating it when absent. It
// works inside the caller's transaction. Project statuses are looked up
// by code and never created.
func Resolve(
	tx *gorm.DB,
	cat capex.Category,
	name string,
	parentID uint,
) (uint, error) {
	name = strings.TrimSpace(name)
	key := schema.NameKey(name)
	if key == "" {
		return 0, capex.ValidationError(string(cat), "name is empty")
	}

	switch cat {
	case capex.AssetClass:
		row := schema.AssetClass{Name: name, NameKey: key}
		return upsert(tx, cat, &row, []string{"name_key"},
			"name_key = ?", key)
	case capex.AssetType:
		if err := checkParent(tx, parentID); err != nil {
			return 0, err
		}
		row := schema.AssetType{Name: name, NameKey: key, AssetClassID: parentID}
		return upsert(tx, cat, &row,
			[]string{"name_key", "asset_class_id"},
			"name_key = ? AND asset_class_id = ?", key, parentID)
	case capex.DesignStatus:
		row := schema.DesignStatus{Name: name, NameKey: key}
		return upsert(tx, cat, &row, []string{"name_key"},
			"name_key = ?", key)
	case capex.EnvStatus:
		row := schema.EnvStatus{Name: name, NameKey: key}
		return upsert(tx, cat, &row, []string{"name_key"},
			"name_key = ?", key)
	case capex.ProjectStatus:
		var row schema.ProjectStatus
		err := tx.Where("code = ?", strings.ToUpper(name)).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, capex.NotFoundError(string(cat), name)
		}
		if err != nil {
			return 0, capex.PersistenceError("look up "+string(cat), err)
		}
		return row.ID, nil
	default:
		return 0, capex.ValidationError("category", fmt.Sprintf("unknown %q", cat))
	}
}

// upsert inserts row unless a row with the same key columns exists,
// then reads the id of the stored row.
func upsert(
	tx *gorm.DB,
	cat capex.Category,
	row any,
	keyCols []string,
	where string,
	args ...any,
) (uint, error) {
	cols := make([]clause.Column, len(keyCols))
	for i, v := range keyCols {
		cols[i] = clause.Column{Name: v}
	}

	err := tx.Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).
		Create(row).Error
	if err != nil {
		return 0, capex.PersistenceError("create "+string(cat), err)
	}

	var ids []uint
	err = tx.Model(row).Where(where, args...).Pluck("id", &ids).Error
	if err != nil {
		return 0, capex.PersistenceError("look up "+string(cat), err)
	}
	if len(ids) == 0 {
		return 0, capex.PersistenceError("look up "+string(cat),
			gorm.ErrRecordNotFound)
	}
	return ids[0], nil
}

func checkParent(tx *gorm.DB, classID uint) error {
	if classID == 0 {
		return capex.ValidationError(string(capex.AssetClass), "asset type needs an asset class")
	}
	var n int64
	err := tx.Model(&schema.AssetClass{}).Where("id = ?", classID).Count(&n).Error
	if err != nil {
		return capex.PersistenceError("look up asset class", err)
	}
	if n == 0 {
		return capex.NotFoundError(string(capex.AssetClass), fmt.Sprint(classID))
	}
	return nil
}
