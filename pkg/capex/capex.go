// Package capex defines contracts of the CAPEX planning core: reference
// resolution, project upserts, priority scoring, risk rating, status
// history, budgets and bulk import. Implementations live in internal/io*
// packages.
package capex

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/odysseus-imc/capexdb/pkg/risk"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
	"github.com/odysseus-imc/capexdb/pkg/status"
	"github.com/odysseus-imc/capexdb/pkg/tabular"
)

// Category is a kind of reference entity.
type Category string

const (
	AssetClass    Category = "asset class"
	AssetType     Category = "asset type"
	DesignStatus  Category = "design status"
	EnvStatus     Category = "environmental status"
	ProjectStatus Category = "project status"
)

// Resolver maps free-text reference names to identifiers.
type Resolver interface {
	// ResolveOrCreate returns the id of the reference with the given name
	// (case-insensitive) and creates it on first use. parentID is the
	// asset class of an AssetType and is ignored by other categories.
	ResolveOrCreate(ctx context.Context, cat Category, name string, parentID uint) (uint, error)

	// Delete removes a reference row that nothing uses.
	Delete(ctx context.Context, cat Category, id uint) error

	// Rename changes the display name of a reference, keeping names
	// unique ignoring case.
	Rename(ctx context.Context, cat Category, id uint, name string) error

	// List returns references of a category. Asset classes and types
	// are sorted by name, statuses keep their seed order.
	List(ctx context.Context, cat Category) ([]Reference, error)
}

// Reference is a row of a reference table. ParentID is the asset class
// of an asset type.
type Reference struct {
	ID       uint
	Name     string
	ParentID uint
}

// ProjectInput is one logical row of a form or an import.
type ProjectInput struct {
	AssetCode    string
	AssetClass   string
	AssetType    string
	Description  string
	Scope        string
	DesignStatus string
	EnvStatus    string
	Scores       scoring.Components

	// Comment is stored with the PLANNED status of a new project.
	Comment string
}

// Defaults of optional project fields.
const (
	DefaultAssetClass   = "Bridges & Culverts"
	DefaultAssetType    = "General"
	DefaultDesignStatus = "To be assigned"
	DefaultEnvStatus    = "Pending"
	DefaultComment      = "Project created"
	ImportComment       = "Project imported from spreadsheet"
)

// WithDefaults fills blank optional fields.
func (in ProjectInput) WithDefaults() ProjectInput {
	for _, v := range []struct {
		field *string
		def   string
	}{
		{&in.AssetClass, DefaultAssetClass},
		{&in.AssetType, DefaultAssetType},
		{&in.DesignStatus, DefaultDesignStatus},
		{&in.EnvStatus, DefaultEnvStatus},
		{&in.Comment, DefaultComment},
	} {
		if strings.TrimSpace(*v.field) == "" {
			*v.field = v.def
		}
	}
	return in
}

// UpsertResult identifies the written asset and project.
type UpsertResult struct {
	AssetID   uint
	ProjectID uint
	Created   bool
}

// Upserter writes assets with their score and project.
type Upserter interface {
	Upsert(ctx context.Context, in ProjectInput, overwrite bool) (UpsertResult, error)
	// Get returns the stored values of an asset and its project.
	Get(ctx context.Context, assetCode string) (ProjectInput, error)
	DeleteProject(ctx context.Context, projectID uint) error
	List(ctx context.Context) ([]ProjectSummary, error)
}

// ProjectSummary is a project with its asset and score.
type ProjectSummary struct {
	ProjectID    uint
	AssetCode    string
	AssetClass   string
	AssetType    string
	Scope        string
	DesignStatus string
	EnvStatus    string
	TotalScore   float64
	PriorityRank *int
}

// Criterion is a weighted ranking dimension.
type Criterion struct {
	ID         uint
	Name       string
	WeightPct  float64
	Definition string
}

// RecomputeResult summarizes a weighted recompute.
type RecomputeResult struct {
	Scores   int
	Projects int
}

// Scorer maintains criteria, weighted totals and project ranks.
type Scorer interface {
	Criteria(ctx context.Context) ([]Criterion, error)
	AddCriterion(ctx context.Context, c Criterion) (Criterion, RecomputeResult, error)
	UpdateCriterion(ctx context.Context, c Criterion) (RecomputeResult, error)
	DeleteCriterion(ctx context.Context, id uint) (RecomputeResult, error)
	Recompute(ctx context.Context) (RecomputeResult, error)
	WeightStatus(ctx context.Context) (scoring.WeightStatus, error)
}

// Assessment is a stored risk rating.
type Assessment struct {
	ID          uint
	ProjectID   uint
	Consequence string
	Likelihood  string
	Rating      risk.Rating
	CreatedAt   time.Time
}

// RiskRater rates projects and keeps every rating.
type RiskRater interface {
	Assess(ctx context.Context, projectID uint, consequenceCode, likelihoodCode string) (Assessment, error)
	Current(ctx context.Context, projectID uint) (Assessment, error)
	List(ctx context.Context, projectID uint) ([]Assessment, error)
}

// StatusTracker appends status events and derives current status.
type StatusTracker interface {
	Append(ctx context.Context, projectID uint, code string, date time.Time, comments string) (status.Event, error)
	Current(ctx context.Context, projectID uint) (status.Event, error)
	History(ctx context.Context, projectID uint) ([]status.Event, error)
	// Recent returns the latest status events of all projects, newest
	// first.
	Recent(ctx context.Context, limit int) ([]StatusChange, error)
	CurrentAll(ctx context.Context) (map[uint]status.Event, error)
}

// StatusChange is a status event with the project it belongs to.
type StatusChange struct {
	status.Event
	AssetCode string
	Scope     string
}

// YearCost is a project's budget for one financial year.
type YearCost struct {
	ProjectID            uint
	FinancialYear        string
	ProjectCost          float64
	CustomerContribution float64
	Summary              string
}

// Budget keeps multi-year project costs.
type Budget interface {
	Set(ctx context.Context, yc YearCost) error
	Delete(ctx context.Context, projectID uint, financialYear string) error
	List(ctx context.Context, projectID uint) ([]YearCost, error)
}

// RowError is a failure of one imported row. Row is 1-based.
type RowError struct {
	Row int
	Err error
}

// String renders the error as "Row N: message".
func (r RowError) String() string {
	return "Row " + strconv.Itoa(r.Row) + ": " + Message(r.Err)
}

// Importer runs projects of a table through the upsert engine row by
// row. source names the input in the import run record.
type Importer interface {
	Import(ctx context.Context, source string, tbl *tabular.Table, overwrite bool) (ImportResult, error)
}

// ImportResult is the outcome of a bulk import.
type ImportResult struct {
	RunID    string
	Rows     int
	Imported int
	Errors   []RowError
}

// Reporter builds portfolio aggregates.
type Reporter interface {
	Dashboard(ctx context.Context) (Dashboard, error)

	// Program pivots budgets by asset class and financial year. It covers
	// up to years financial years starting at from; an empty from starts
	// at the earliest year and years < 1 covers all of them.
	Program(ctx context.Context, from string, years int) (Program, error)
}

// Program is a multi-year budget of asset classes. Amounts of a row are
// aligned with Years.
type Program struct {
	Years      []string
	Rows       []ProgramRow
	YearTotals []float64
	Total      float64
}

// ProgramRow is the budget of one asset class.
type ProgramRow struct {
	AssetClass string
	Amounts    []float64
	Total      float64
}

// Dashboard holds portfolio aggregates.
type Dashboard struct {
	TotalProjects     int64
	TotalBudget       float64
	ActiveProjects    int
	CompletedProjects int
	ByAssetClass      []Count
	BudgetByYear      []Amount
	StatusCounts      []Count
	Weights           scoring.WeightStatus
}

// Count is a labeled number of projects.
type Count struct {
	Label string
	Count int64
}

// Amount is a labeled sum of money.
type Amount struct {
	Label  string
	Amount float64
}
