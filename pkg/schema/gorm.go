package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// Referenced tables go first.
func AllModels() []any {
	return []any{
		&AssetClass{},
		&AssetType{},
		&DesignStatus{},
		&EnvStatus{},
		&ProjectStatus{},
		&Asset{},
		&PriorityScore{},
		&Criterion{},
		&Project{},
		&ProjectYearCost{},
		&Consequence{},
		&Likelihood{},
		&RiskAssessment{},
		&ProjectStatusHistory{},
		&ImportRun{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
