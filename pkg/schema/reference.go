package schema

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

// Status codes used by the core.
const (
	StatusPlanned    = "PLANNED"
	StatusDesign     = "DESIGN"
	StatusApproved   = "APPROVED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOnHold     = "ON_HOLD"
)

// ReferenceData is the content of the embedded seed file.
type ReferenceData struct {
	AssetClasses    []string `yaml:"asset_classes"`
	DesignStatuses  []string `yaml:"design_statuses"`
	EnvStatuses     []string `yaml:"env_statuses"`
	ProjectStatuses []struct {
		Code        string `yaml:"code"`
		Description string `yaml:"description"`
	} `yaml:"project_statuses"`
	Criteria []struct {
		Name       string  `yaml:"name"`
		WeightPct  float64 `yaml:"weight_pct"`
		Definition string  `yaml:"definition"`
	} `yaml:"criteria"`
	Consequences []ScoreRef `yaml:"consequences"`
	Likelihoods  []ScoreRef `yaml:"likelihoods"`
}

// ScoreRef is a coded lookup row with a numeric score.
type ScoreRef struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Score       int    `yaml:"score"`
}

// Reference parses the embedded seed data.
func Reference() (*ReferenceData, error) {
	var res ReferenceData
	if err := yaml.Unmarshal(referenceYAML, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
