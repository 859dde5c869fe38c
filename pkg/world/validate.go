package world

import (
	"fmt"

	"github.com/evanschultz/float-worldbook/pkg/models"
)

// Severity ranks validation issues.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one problem found in a world's elements.
type Issue struct {
	Element  string // element id, empty for world-level issues
	Index    int    // position in the element list
	Field    string // reference field, empty for element-level issues
	Kind     string // "duplicate-id", "missing-id", "missing-name", "dangling-ref", "self-ref"
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	where := fmt.Sprintf("#%d", i.Index)
	if i.Element != "" {
		where = i.Element
	}
	if i.Field != "" {
		where += "." + i.Field
	}
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Kind, where, i.Message)
}

// Validate checks elements for schema problems the reverse-link engine
// deliberately tolerates. Issues are returned in element order.
func Validate(elements []models.Element) []Issue {
	var issues []Issue

	known := make(map[string]bool, len(elements))
	for _, e := range elements {
		if e.ID != "" {
			known[e.ID] = true
		}
	}

	seen := make(map[string]int, len(elements))
	for i, e := range elements {
		if e.ID == "" {
			issues = append(issues, Issue{
				Index:    i,
				Kind:     "missing-id",
				Message:  "element has no id",
				Severity: SeverityError,
			})
		} else if first, dup := seen[e.ID]; dup {
			issues = append(issues, Issue{
				Element:  e.ID,
				Index:    i,
				Kind:     "duplicate-id",
				Message:  fmt.Sprintf("id already used by element #%d", first),
				Severity: SeverityError,
			})
		} else {
			seen[e.ID] = i
		}

		if e.Name == "" {
			issues = append(issues, Issue{
				Element:  e.ID,
				Index:    i,
				Kind:     "missing-name",
				Message:  "element has no name",
				Severity: SeverityWarning,
			})
		}

		for _, rel := range models.Relations {
			for _, ref := range rel.Refs(e).IDs() {
				switch {
				case ref == e.ID:
					issues = append(issues, Issue{
						Element:  e.ID,
						Index:    i,
						Field:    rel.Field,
						Kind:     "self-ref",
						Message:  "element references itself",
						Severity: SeverityInfo,
					})
				case !known[ref]:
					issues = append(issues, Issue{
						Element:  e.ID,
						Index:    i,
						Field:    rel.Field,
						Kind:     "dangling-ref",
						Message:  fmt.Sprintf("no element with id %q", ref),
						Severity: SeverityWarning,
					})
				}
			}
		}
	}

	return issues
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
