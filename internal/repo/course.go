package repo

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/stack/internal/model"
)

// CourseProvider lists the distinct course names present in a collection.
type CourseProvider interface {
	AvailableCourses(assignments []model.Assignment) []string
}

// CourseList derives the distinct, non-blank course names from a collection,
// sorted case-insensitively with locale-aware collation.
//
// Not safe for concurrent use: the collator keeps internal buffers. The
// engine calls it under its own state lock.
type CourseList struct {
	collator *collate.Collator
}

// NewCourseList creates a CourseList with a case-insensitive collator.
func NewCourseList() *CourseList {
	return &CourseList{collator: collate.New(language.Und, collate.IgnoreCase)}
}

// AvailableCourses returns each distinct non-blank course name once, sorted.
func (c *CourseList) AvailableCourses(assignments []model.Assignment) []string {
	seen := make(map[string]struct{}, len(assignments))
	courses := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if strings.TrimSpace(a.Course) == "" {
			continue
		}
		if _, ok := seen[a.Course]; ok {
			continue
		}
		seen[a.Course] = struct{}{}
		courses = append(courses, a.Course)
	}
	c.collator.SortStrings(courses)
	return courses
}
