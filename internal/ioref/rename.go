package ioref

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
)

// Rename gives a reference a new display name. Names stay unique
// ignoring case: within the asset class for asset types, across the
// table otherwise. Changing only the letter case of a name is allowed.
// Project status codes are fixed.
func (r *resolver) Rename(
	ctx context.Context,
	cat capex.Category,
	id uint,
	name string,
) error {
	gdb := r.operator.DB()
	if gdb == nil {
		return capex.StoreUnavailableError(errors.New("not connected"))
	}

	name = strings.TrimSpace(name)
	key := schema.NameKey(name)
	if key == "" {
		return capex.ValidationError(string(cat), "name is empty")
	}
	if cat == capex.ProjectStatus {
		return capex.ValidationError(string(cat), "status codes cannot be renamed")
	}
	u, ok := usages[cat]
	if !ok {
		return capex.ValidationError("category", fmt.Sprintf("unknown %q", cat))
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := refName(tx, cat, u.model, id); err != nil {
			return err
		}

		q := tx.Model(u.model).Where("name_key = ? AND id <> ?", key, id)
		if cat == capex.AssetType {
			var at schema.AssetType
			if err := tx.First(&at, id).Error; err != nil {
				return capex.PersistenceError("look up "+string(cat), err)
			}
			q = q.Where("asset_class_id = ?", at.AssetClassID)
		}

		var n int64
		if err := q.Count(&n).Error; err != nil {
			return capex.PersistenceError("check "+string(cat)+" names", err)
		}
		if n > 0 {
			return capex.DuplicateNameError(string(cat), name)
		}

		err := tx.Model(u.model).Where("id = ?", id).Updates(map[string]any{
			"name":     name,
			"name_key": key,
		}).Error
		if err != nil {
			return capex.PersistenceError("rename "+string(cat), err)
		}
		return nil
	})
}
