package model

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// AssetType is the kind of graded asset.
type AssetType string

const (
	// AssetNotebook is a graded .ipynb notebook.
	AssetNotebook AssetType = "notebook"
	// AssetScreenshot is a completion screenshot folder.
	AssetScreenshot AssetType = "screenshot"
)

// Overrides are corrections applied to a notebook's result after grading.
type Overrides struct {
	// ForceRawMax lists sections whose raw score is always the maximum.
	ForceRawMax []string `yaml:"force_raw_max,omitempty"`
	// CountSections restricts which sections count toward the activity
	// score. Empty means every rubric section counts.
	CountSections []string `yaml:"count_sections,omitempty"`
	// ScopeLabel describes the counted range in reports.
	ScopeLabel string `yaml:"scope_label,omitempty"`
}

// Asset is one graded item of a course.
type Asset struct {
	ID              string    `yaml:"-"`
	Type            AssetType `yaml:"type"`
	FilenamePattern string    `yaml:"filename_pattern,omitempty"`
	Expected        Rubric    `yaml:"expected,omitempty"`
	Overrides       Overrides `yaml:"overrides,omitempty"`
	Description     string    `yaml:"description,omitempty"`
	Required        bool      `yaml:"required,omitempty"`
}

// Assets is an ordered asset table keyed by asset id.
type Assets []Asset

// UnmarshalYAML decodes a mapping of asset id to asset in order.
func (as *Assets) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: assets must be a mapping", value.Line)
	}

	out := make(Assets, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		var asset Asset
		if err := value.Content[i+1].Decode(&asset); err != nil {
			return fmt.Errorf("asset %q: %w", value.Content[i].Value, err)
		}

		asset.ID = value.Content[i].Value
		out = append(out, asset)
	}

	*as = out

	return nil
}

// Course is the full grading configuration of one course.
type Course struct {
	Name                 string `yaml:"course"`
	ReportPrefix         string `yaml:"report_prefix"`
	SubmissionDirPattern string `yaml:"submission_dir_pattern,omitempty"`
	Assets               Assets `yaml:"assets"`
}

// Notebooks returns the notebook assets in course order.
func (c Course) Notebooks() []Asset {
	return c.byType(AssetNotebook)
}

// Screenshots returns the screenshot assets sorted by id.
func (c Course) Screenshots() []Asset {
	shots := c.byType(AssetScreenshot)
	sort.Slice(shots, func(i, j int) bool { return shots[i].ID < shots[j].ID })

	return shots
}

// Asset returns the asset with the given id.
func (c Course) Asset(id string) (Asset, bool) {
	for _, asset := range c.Assets {
		if asset.ID == id {
			return asset, true
		}
	}

	return Asset{}, false
}

func (c Course) byType(t AssetType) []Asset {
	var out []Asset

	for _, asset := range c.Assets {
		if asset.Type == t {
			out = append(out, asset)
		}
	}

	return out
}
