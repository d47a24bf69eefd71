package domain

import (
	"regexp"
	"strings"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

var (
	topLevelPattern     = regexp.MustCompile(`^\s*#+\s+(\d+)\.?\s+`)
	subsectionPattern   = regexp.MustCompile(`^\s*#+\s+(\d+[a-z])\.?\s+`)
	depthSubPattern     = regexp.MustCompile(`^\s*###\s+(\d+[a-z])\.?\s+`)
	simpleHeaderPattern = regexp.MustCompile(`^#+\s*(\d+[a-z]?)\.?\s+`)
)

// dialectTokens maps identifying asset id fragments to the dialect their
// documents are written in. Lookup is case-insensitive.
var dialectTokens = map[string]m.HeaderDialect{
	"02-rnaseq_analysis": m.DialectPrefix,
}

// headerLevel says which tracker slot a header updates.
type headerLevel int

const (
	levelSection headerLevel = iota
	levelSubsection
)

// dialect recognises header lines in markdown cells.
type dialect struct {
	name m.HeaderDialect
	// match classifies one line of a markdown cell.
	match func(line string) (key string, level headerLevel, ok bool)
	// firstOnly stops scanning a cell at its first header.
	firstOnly bool
	// trimSource trims the whole cell before it is split into lines.
	trimSource bool
}

var dialects = map[m.HeaderDialect]dialect{
	m.DialectDepth:  {name: m.DialectDepth, match: matchDepth},
	m.DialectPrefix: {name: m.DialectPrefix, match: matchPrefix},
	m.DialectSimple: {name: m.DialectSimple, match: matchSimple},
}

// questionDialect reads single-level headers of question/answer notebooks,
// where only the first header of a cell counts.
var questionDialect = dialect{name: m.DialectSimple, match: matchSimple, firstOnly: true, trimSource: true}

// DialectFor picks the header dialect of a rubric's documents. An explicit
// dialect wins; otherwise the asset id decides.
func DialectFor(rubric m.Rubric) m.HeaderDialect {
	if _, ok := dialects[rubric.Dialect]; ok {
		return rubric.Dialect
	}

	assetID := strings.ToLower(rubric.AssetID)
	for token, name := range dialectTokens {
		if strings.Contains(assetID, token) {
			return name
		}
	}

	return m.DialectDepth
}

func matchDepth(line string) (string, headerLevel, bool) {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "###"):
		if match := depthSubPattern.FindStringSubmatch(line); match != nil {
			return match[1] + ".", levelSubsection, true
		}
	case strings.HasPrefix(trimmed, "#"):
		if match := topLevelPattern.FindStringSubmatch(line); match != nil {
			return match[1] + ".", levelSection, true
		}
	}

	return "", levelSection, false
}

func matchPrefix(line string) (string, headerLevel, bool) {
	if match := topLevelPattern.FindStringSubmatch(line); match != nil {
		return match[1] + ".", levelSection, true
	}

	if match := subsectionPattern.FindStringSubmatch(line); match != nil {
		return match[1] + ".", levelSubsection, true
	}

	return "", levelSection, false
}

func matchSimple(line string) (string, headerLevel, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", levelSection, false
	}

	if match := simpleHeaderPattern.FindStringSubmatch(strings.TrimSpace(line)); match != nil {
		return match[1] + ".", levelSection, true
	}

	return "", levelSection, false
}

// tracker walks markdown cells and keeps the current section state.
type tracker struct {
	dialect    dialect
	aliases    []m.HeaderAlias
	section    string
	subsection string
}

func newTracker(name m.HeaderDialect, aliases []m.HeaderAlias) *tracker {
	d, ok := dialects[name]
	if !ok {
		d = dialects[m.DialectDepth]
	}

	return &tracker{dialect: d, aliases: aliases}
}

func newQuestionTracker() *tracker {
	return &tracker{dialect: questionDialect}
}

// observe updates the state from a cell and returns the keys it entered,
// in the order they were seen. Non-markdown cells are ignored.
//
// The last top-level header and the last subsection header of a cell both
// become current, so a subsection written above a section header in the
// same cell stays active.
func (t *tracker) observe(cell m.Cell) []string {
	if cell.Kind != m.CellMarkdown {
		return nil
	}

	source := string(cell.Source)
	if t.dialect.trimSource {
		source = strings.TrimSpace(source)
	}

	var entered []string

	for _, alias := range t.aliases {
		if aliasMatches(alias, source) {
			t.section, t.subsection = alias.Section, ""
			entered = append(entered, alias.Section)
		}
	}

	var section, subsection string

	for _, line := range strings.Split(source, "\n") {
		key, level, ok := t.dialect.match(line)
		if !ok {
			continue
		}

		if level == levelSubsection {
			subsection = key
		} else {
			section = key
		}

		entered = append(entered, key)

		if t.dialect.firstOnly {
			break
		}
	}

	if section != "" {
		t.section, t.subsection = section, ""
	}

	if subsection != "" {
		t.subsection = subsection
	}

	return entered
}

// active is the key cells are attributed to: the subsection when set.
func (t *tracker) active() string {
	if t.subsection != "" {
		return t.subsection
	}

	return t.section
}

func aliasMatches(alias m.HeaderAlias, source string) bool {
	if alias.Section == "" || len(alias.Contains) == 0 {
		return false
	}

	for _, fragment := range alias.Contains {
		if !strings.Contains(source, fragment) {
			return false
		}
	}

	return true
}
