package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Special selects an alternate grading rule for a whole document.
type Special string

const (
	// SpecialNone is the default code/raw cell grading.
	SpecialNone Special = ""
	// SpecialMarkdownExercise grades code cells plus a single markdown exercise.
	SpecialMarkdownExercise Special = "markdown_exercise_01"
	// SpecialQuestionAnswer grades "Question:" cells only.
	SpecialQuestionAnswer Special = "question_answer"
)

// HeaderDialect names the rule used to recognise section headers.
type HeaderDialect string

const (
	// DialectAuto lets the grader pick a dialect from the asset id.
	DialectAuto HeaderDialect = ""
	// DialectDepth tells sections from subsections by heading depth.
	DialectDepth HeaderDialect = "depth"
	// DialectPrefix tells sections from subsections by the key shape.
	DialectPrefix HeaderDialect = "prefix"
	// DialectSimple tracks a single level of optional-letter keys.
	DialectSimple HeaderDialect = "simple"
)

// Section is the expected-unit descriptor for one section key.
//
// A section either splits its units into code and raw cells, or carries a
// plain point value. In YAML a bare integer is a points-only section.
type Section struct {
	Key       string  `yaml:"-"`
	Name      string  `yaml:"name,omitempty"`
	CodeCells int     `yaml:"code_cells,omitempty"`
	RawCells  int     `yaml:"raw_cells,omitempty"`
	Points    int     `yaml:"points,omitempty"`
	Special   Special `yaml:"special,omitempty"`
	Split     bool    `yaml:"-"`
}

// Expected returns the maximum number of points the section is worth.
func (s Section) Expected() int {
	if s.Split {
		return s.CodeCells + s.RawCells
	}

	return s.Points
}

// UnmarshalYAML decodes either a bare point value or a descriptor mapping.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var points int
		if err := value.Decode(&points); err != nil {
			return fmt.Errorf("line %d: section value must be a mapping or an integer: %w", value.Line, err)
		}

		*s = Section{Points: points}

		return nil
	}

	var aux struct {
		Name      string  `yaml:"name"`
		CodeCells *int    `yaml:"code_cells"`
		RawCells  *int    `yaml:"raw_cells"`
		Points    int     `yaml:"points"`
		Special   Special `yaml:"special"`
	}

	if err := value.Decode(&aux); err != nil {
		return err
	}

	*s = Section{
		Name:    aux.Name,
		Points:  aux.Points,
		Special: aux.Special,
		Split:   aux.CodeCells != nil || aux.RawCells != nil,
	}

	if aux.CodeCells != nil {
		s.CodeCells = *aux.CodeCells
	}

	if aux.RawCells != nil {
		s.RawCells = *aux.RawCells
	}

	return nil
}

// Sections is an ordered section table. The YAML mapping order is kept.
type Sections []Section

// UnmarshalYAML decodes a mapping of section key to descriptor in order.
func (ss *Sections) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sections must be a mapping", value.Line)
	}

	out := make(Sections, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]

		var section Section
		if err := valueNode.Decode(&section); err != nil {
			return fmt.Errorf("section %q: %w", keyNode.Value, err)
		}

		section.Key = keyNode.Value
		out = append(out, section)
	}

	*ss = out

	return nil
}

// HeaderAlias maps a literal header, recognised by all of its fragments,
// onto a top-level section key.
type HeaderAlias struct {
	Contains []string `yaml:"contains"`
	Section  string   `yaml:"section"`
}

// Rubric is the expected structure of one notebook document.
type Rubric struct {
	AssetID    string        `yaml:"asset_id"`
	TotalCells int           `yaml:"total_cells,omitempty"`
	Dialect    HeaderDialect `yaml:"header_dialect,omitempty"`
	Aliases    []HeaderAlias `yaml:"header_aliases,omitempty"`
	Sections   Sections      `yaml:"sections"`
}

// Lookup returns the section descriptor for key.
func (r Rubric) Lookup(key string) (Section, bool) {
	for _, section := range r.Sections {
		if section.Key == key {
			return section, true
		}
	}

	return Section{}, false
}

// Has reports whether key is a rubric section.
func (r Rubric) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Expected sums the expected points of the given keys, or of every section
// when keys is empty. Unknown keys are ignored.
func (r Rubric) Expected(keys ...string) int {
	total := 0

	if len(keys) == 0 {
		for _, section := range r.Sections {
			total += section.Expected()
		}

		return total
	}

	for _, key := range keys {
		if section, ok := r.Lookup(key); ok {
			total += section.Expected()
		}
	}

	return total
}
