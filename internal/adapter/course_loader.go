package adapter

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// ErrInvalidCourse is returned when a course file fails validation.
var ErrInvalidCourse = errors.New("invalid course")

//go:embed courses/gl4u_rnaseq.yaml
var defaultCourseYAML []byte

// CourseLoader reads course configurations.
type CourseLoader interface {
	// LoadCourse reads the course at path, or the built-in course when
	// path is empty.
	LoadCourse(path m.Path) (m.Course, error)
}

// YAMLCourseLoader loads YAML course files.
type YAMLCourseLoader struct{}

// NewYAMLCourseLoader constructs a YAMLCourseLoader.
func NewYAMLCourseLoader() *YAMLCourseLoader {
	return &YAMLCourseLoader{}
}

// LoadCourse implements CourseLoader.
func (l *YAMLCourseLoader) LoadCourse(path m.Path) (m.Course, error) {
	if path == "" {
		return ParseCourse(defaultCourseYAML)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Course{}, fmt.Errorf("read course file: %w", err)
	}

	course, err := ParseCourse(data)
	if err != nil {
		return m.Course{}, fmt.Errorf("%s: %w", path, err)
	}

	return course, nil
}

// DefaultCourseYAML returns the built-in course file.
func DefaultCourseYAML() []byte {
	return bytes.Clone(defaultCourseYAML)
}

// ParseCourse decodes and validates a course document.
func ParseCourse(data []byte) (m.Course, error) {
	var course m.Course

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&course); err != nil {
		return m.Course{}, fmt.Errorf("%w: %w", ErrInvalidCourse, err)
	}

	if err := validateCourse(course); err != nil {
		return m.Course{}, err
	}

	return course, nil
}

func validateCourse(course m.Course) error {
	if course.Name == "" {
		return fmt.Errorf("%w: missing course name", ErrInvalidCourse)
	}

	if course.SubmissionDirPattern != "" {
		if _, err := regexp.Compile(course.SubmissionDirPattern); err != nil {
			return fmt.Errorf("%w: submission_dir_pattern: %w", ErrInvalidCourse, err)
		}
	}

	for _, asset := range course.Assets {
		switch asset.Type {
		case m.AssetScreenshot:
		case m.AssetNotebook:
			if err := validateRubric(asset.Expected); err != nil {
				return fmt.Errorf("%w: asset %s: %w", ErrInvalidCourse, asset.ID, err)
			}
		default:
			return fmt.Errorf("%w: asset %s: unknown type %q", ErrInvalidCourse, asset.ID, asset.Type)
		}
	}

	return nil
}

func validateRubric(rubric m.Rubric) error {
	if len(rubric.Sections) == 0 {
		return errors.New("no sections")
	}

	switch rubric.Dialect {
	case m.DialectAuto, m.DialectDepth, m.DialectPrefix, m.DialectSimple:
	default:
		return fmt.Errorf("unknown header_dialect %q", rubric.Dialect)
	}

	seen := map[string]bool{}

	for _, section := range rubric.Sections {
		if seen[section.Key] {
			return fmt.Errorf("duplicate section %q", section.Key)
		}

		seen[section.Key] = true

		switch section.Special {
		case m.SpecialNone, m.SpecialMarkdownExercise, m.SpecialQuestionAnswer:
		default:
			return fmt.Errorf("section %s: unknown special %q", section.Key, section.Special)
		}
	}

	return nil
}
