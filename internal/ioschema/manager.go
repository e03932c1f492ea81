// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/lifecycle"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the schema and loads reference data.
func (m *manager) Create(ctx context.Context) error {
	gdb := m.operator.DB()
	if gdb == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if _, err := m.Seed(ctx); err != nil {
		return err
	}
	return nil
}

// Migrate updates the schema to the latest version.
func (m *manager) Migrate(ctx context.Context) error {
	gdb := m.operator.DB()
	if gdb == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

// Seed loads reference data into empty tables in one transaction.
// It returns the number of inserted rows.
func (m *manager) Seed(ctx context.Context) (int, error) {
	gdb := m.operator.DB()
	if gdb == nil {
		return 0, NotConnectedError()
	}

	ref, err := schema.Reference()
	if err != nil {
		return 0, SeedDataError(err)
	}

	var total int
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range seeders(ref) {
			n, err := seedTable(tx, s)
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Reference data loaded", "rows", total)
	return total, nil
}

type seeder struct {
	table string
	model any
	rows  any
	count int
}

func seeders(ref *schema.ReferenceData) []seeder {
	var classes []schema.AssetClass
	for _, v := range ref.AssetClasses {
		classes = append(classes,
			schema.AssetClass{Name: v, NameKey: schema.NameKey(v)})
	}

	var design []schema.DesignStatus
	for _, v := range ref.DesignStatuses {
		design = append(design,
			schema.DesignStatus{Name: v, NameKey: schema.NameKey(v)})
	}

	var env []schema.EnvStatus
	for _, v := range ref.EnvStatuses {
		env = append(env,
			schema.EnvStatus{Name: v, NameKey: schema.NameKey(v)})
	}

	var statuses []schema.ProjectStatus
	for _, v := range ref.ProjectStatuses {
		statuses = append(statuses,
			schema.ProjectStatus{Code: v.Code, Description: v.Description})
	}

	var criteria []schema.Criterion
	for _, v := range ref.Criteria {
		criteria = append(criteria, schema.Criterion{
			Name: v.Name, WeightPct: v.WeightPct, Definition: v.Definition,
		})
	}

	var consequences []schema.Consequence
	for _, v := range ref.Consequences {
		consequences = append(consequences, schema.Consequence{
			Code: v.Code, Description: v.Description, Score: v.Score,
		})
	}

	var likelihoods []schema.Likelihood
	for _, v := range ref.Likelihoods {
		likelihoods = append(likelihoods, schema.Likelihood{
			Code: v.Code, Description: v.Description, Score: v.Score,
		})
	}

	return []seeder{
		{"asset_classes", &schema.AssetClass{}, &classes, len(classes)},
		{"design_statuses", &schema.DesignStatus{}, &design, len(design)},
		{"env_statuses", &schema.EnvStatus{}, &env, len(env)},
		{"project_statuses", &schema.ProjectStatus{}, &statuses, len(statuses)},
		{"criteria", &schema.Criterion{}, &criteria, len(criteria)},
		{"consequences", &schema.Consequence{}, &consequences, len(consequences)},
		{"likelihoods", &schema.Likelihood{}, &likelihoods, len(likelihoods)},
	}
}

func seedTable(tx *gorm.DB, s seeder) (int, error) {
	if s.count == 0 {
		return 0, nil
	}

	var n int64
	if err := tx.Model(s.model).Count(&n).Error; err != nil {
		return 0, SeedError(s.table, err)
	}
	if n > 0 {
		slog.Debug("Reference table is not empty, skipping", "table", s.table)
		return 0, nil
	}

	if err := tx.Create(s.rows).Error; err != nil {
		return 0, SeedError(s.table, err)
	}
	return s.count, nil
}
