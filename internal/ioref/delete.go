package ioref

import (
	"context"
	"errors"
	"fmt"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
)

// usage describes what blocks deletion of a reference category.
type usage struct {
	model  any
	usedBy any
	column string
	label  string
}

var usages = map[capex.Category]usage{
	capex.AssetClass: {
		&schema.AssetClass{}, &schema.AssetType{}, "asset_class_id", "asset types",
	},
	capex.AssetType: {
		&schema.AssetType{}, &schema.Asset{}, "asset_type_id", "assets",
	},
	capex.DesignStatus: {
		&schema.DesignStatus{}, &schema.Project{}, "design_status_id", "projects",
	},
	capex.EnvStatus: {
		&schema.EnvStatus{}, &schema.Project{}, "env_status_id", "projects",
	},
	capex.ProjectStatus: {
		&schema.ProjectStatus{}, &schema.ProjectStatusHistory{},
		"project_status_id", "status history entries",
	},
}

// Delete removes a reference row. The usage check and the delete run in
// the same transaction.
func (r *resolver) Delete(
	ctx context.Context,
	cat capex.Category,
	id uint,
) error {
	gdb := r.operator.DB()
	if gdb == nil {
		return capex.StoreUnavailableError(errors.New("not connected"))
	}

	u, ok := usages[cat]
	if !ok {
		return capex.ValidationError("category", fmt.Sprintf("unknown %q", cat))
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		name, err := refName(tx, cat, u.model, id)
		if err != nil {
			return err
		}

		var n int64
		err = tx.Model(u.usedBy).Where(u.column+" = ?", id).Count(&n).Error
		if err != nil {
			return capex.PersistenceError("check usage of "+string(cat), err)
		}
		if n > 0 {
			return capex.ReferentialIntegrityError(string(cat), name, n, u.label)
		}

		if err = tx.Delete(u.model, id).Error; err != nil {
			return capex.PersistenceError("delete "+string(cat), err)
		}
		return nil
	})
}

func refName(tx *gorm.DB, cat capex.Category, model any, id uint) (string, error) {
	col := "name"
	if cat == capex.ProjectStatus {
		col = "code"
	}

	var names []string
	err := tx.Model(model).Where("id = ?", id).Pluck(col, &names).Error
	if err != nil {
		return "", capex.PersistenceError("look up "+string(cat), err)
	}
	if len(names) == 0 {
		return "", capex.NotFoundError(string(cat), fmt.Sprint(id))
	}
	return names[0], nil
}

// List returns references of a category.
func (r *resolver) List(
	ctx context.Context,
	cat capex.Category,
) ([]capex.Reference, error) {
	gdb := r.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}
	tx := gdb.WithContext(ctx)

	var res []capex.Reference
	var err error
	switch cat {
	case capex.AssetClass:
		var rows []schema.AssetClass
		err = tx.Order("name").Find(&rows).Error
		for _, v := range rows {
			res = append(res, capex.Reference{ID: v.ID, Name: v.Name})
		}
	case capex.AssetType:
		var rows []schema.AssetType
		err = tx.Order("name").Order("asset_class_id").Find(&rows).Error
		for _, v := range rows {
			res = append(res, capex.Reference{
				ID: v.ID, Name: v.Name, ParentID: v.AssetClassID,
			})
		}
	case capex.DesignStatus:
		var rows []schema.DesignStatus
		err = tx.Order("id").Find(&rows).Error
		for _, v := range rows {
			res = append(res, capex.Reference{ID: v.ID, Name: v.Name})
		}
	case capex.EnvStatus:
		var rows []schema.EnvStatus
		err = tx.Order("id").Find(&rows).Error
		for _, v := range rows {
			res = append(res, capex.Reference{ID: v.ID, Name: v.Name})
		}
	case capex.ProjectStatus:
		var rows []schema.ProjectStatus
		err = tx.Order("id").Find(&rows).Error
		for _, v := range rows {
			res = append(res, capex.Reference{ID: v.ID, Name: v.Code})
		}
	default:
		return nil, capex.ValidationError("category", fmt.Sprintf("unknown %q", cat))
	}
	if err != nil {
		return nil, capex.PersistenceError("list "+string(cat), err)
	}
	return res, nil
}
