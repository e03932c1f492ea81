// Package schema provides GORM models of the CAPEX planning store.
//
// Reference tables (asset classes, asset types, design and environmental
// statuses) keep a NameKey column next to the display name. NameKey is the
// case-folded name and carries the unique index, so two references that
// differ only in letter case cannot coexist in one scope.
package schema

import (
	"strings"
	"time"
)

// NameKey returns the case-insensitive lookup key of a reference name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AssetClass groups asset types, for example "Bridges & Culverts".
type AssetClass struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	NameKey string `gorm:"size:255;not null;uniqueIndex"`
}

// AssetType is a kind of asset within an AssetClass. The same type name
// may exist under different classes.
type AssetType struct {
	ID           uint        `gorm:"primaryKey"`
	Name         string      `gorm:"size:255;not null"`
	NameKey      string      `gorm:"size:255;not null;uniqueIndex:idx_asset_type_scope"`
	AssetClassID uint        `gorm:"not null;uniqueIndex:idx_asset_type_scope"`
	AssetClass   *AssetClass `gorm:"constraint:OnDelete:RESTRICT"`
}

// DesignStatus is the design stage of a project.
type DesignStatus struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	NameKey string `gorm:"size:255;not null;uniqueIndex"`
}

// EnvStatus is the environmental approval stage of a project.
type EnvStatus struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	NameKey string `gorm:"size:255;not null;uniqueIndex"`
}

// ProjectStatus is a lifecycle category such as PLANNED or COMPLETED.
type ProjectStatus struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;not null;uniqueIndex"`
	Description string `gorm:"size:255"`
}

// Asset is a physical infrastructure item. Code is supplied by users
// and is unique across the store.
type Asset struct {
	ID          uint       `gorm:"primaryKey"`
	Code        string     `gorm:"size:100;not null;uniqueIndex"`
	AssetTypeID uint       `gorm:"not null;index"`
	AssetType   *AssetType `gorm:"constraint:OnDelete:RESTRICT"`
	Description string     `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriorityScore keeps five component scores of an asset and the cached
// total. TotalScore is derived: it is either the flat sum written by the
// single-record path or the weighted total written by a recompute.
type PriorityScore struct {
	ID                uint   `gorm:"primaryKey"`
	AssetID           uint   `gorm:"not null;uniqueIndex"`
	Asset             *Asset `gorm:"constraint:OnDelete:CASCADE"`
	WHSScore          float64
	WaterSavingsScore float64
	CustomerScore     float64
	MaintenanceScore  float64
	FinancialScore    float64
	TotalScore        float64 `gorm:"index"`
}

// Criterion is a weighted ranking dimension.
type Criterion struct {
	ID         uint    `gorm:"primaryKey"`
	Name       string  `gorm:"size:255;not null;uniqueIndex"`
	WeightPct  float64 `gorm:"not null"`
	Definition string  `gorm:"type:text"`
}

// TableName overrides the pluralized table name.
func (Criterion) TableName() string {
	return "criteria"
}

// Project is a work scope proposed against an asset.
type Project struct {
	ID             uint          `gorm:"primaryKey"`
	AssetID        uint          `gorm:"not null;index"`
	Asset          *Asset        `gorm:"constraint:OnDelete:RESTRICT"`
	Scope          string        `gorm:"type:text"`
	DesignStatusID uint          `gorm:"not null;index"`
	DesignStatus   *DesignStatus `gorm:"constraint:OnDelete:RESTRICT"`
	EnvStatusID    uint          `gorm:"not null;index"`
	EnvStatus      *EnvStatus    `gorm:"constraint:OnDelete:RESTRICT"`
	PriorityRank   *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectYearCost is one financial year of a project's budget.
type ProjectYearCost struct {
	ID                   uint     `gorm:"primaryKey"`
	ProjectID            uint     `gorm:"not null;uniqueIndex:idx_project_year"`
	Project              *Project `gorm:"constraint:OnDelete:CASCADE"`
	FinancialYear        string   `gorm:"size:20;not null;uniqueIndex:idx_project_year"`
	ProjectCost          float64
	CustomerContribution float64
	Summary              string `gorm:"type:text"`
}

// Consequence is a static lookup of consequence severity (score 1-5).
type Consequence struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:10;not null;uniqueIndex"`
	Description string `gorm:"size:100"`
	Score       int    `gorm:"not null"`
}

// Likelihood is a static lookup of likelihood (score 1-6).
type Likelihood struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:10;not null;uniqueIndex"`
	Description string `gorm:"size:100"`
	Score       int    `gorm:"not null"`
}

// RiskAssessment is one rating of a project. Rows are never updated;
// reassessment appends a new row.
type RiskAssessment struct {
	ID            uint         `gorm:"primaryKey"`
	ProjectID     uint         `gorm:"not null;index"`
	Project       *Project     `gorm:"constraint:OnDelete:CASCADE"`
	ConsequenceID uint         `gorm:"not null"`
	Consequence   *Consequence `gorm:"constraint:OnDelete:RESTRICT"`
	LikelihoodID  uint         `gorm:"not null"`
	Likelihood    *Likelihood  `gorm:"constraint:OnDelete:RESTRICT"`
	RiskRating    string       `gorm:"size:20;not null"`
	CreatedAt     time.Time
}

// ProjectStatusHistory is an append-only log of status events.
// Seq increases with every insert for a project and breaks ties
// between events with the same StatusDate.
type ProjectStatusHistory struct {
	ID              uint           `gorm:"primaryKey"`
	ProjectID       uint           `gorm:"not null;index:idx_status_order"`
	Project         *Project       `gorm:"constraint:OnDelete:CASCADE"`
	ProjectStatusID uint           `gorm:"not null;index"`
	ProjectStatus   *ProjectStatus `gorm:"constraint:OnDelete:RESTRICT"`
	StatusDate      time.Time      `gorm:"not null;index:idx_status_order"`
	Seq             int64          `gorm:"not null;index:idx_status_order"`
	Comments        string         `gorm:"type:text"`
}

// TableName keeps the log table name singular.
func (ProjectStatusHistory) TableName() string {
	return "project_status_history"
}

// ImportRun records one bulk import.
type ImportRun struct {
	ID         string `gorm:"primaryKey;size:36"`
	Source     string `gorm:"size:500"`
	Overwrite  bool
	Rows       int
	Imported   int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}
