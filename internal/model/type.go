package model

// Type categorizes an assignment by the kind of work it requires.
type Type string

const (
	TypeHomework     Type = "Homework"
	TypeReport       Type = "Report"
	TypeEssay        Type = "Essay"
	TypePresentation Type = "Presentation"
	TypeQuiz         Type = "Quiz"
	TypeExam         Type = "Exam"
)

// AllTypes lists every assignment type in display order.
var AllTypes = []Type{TypeHomework, TypeReport, TypeEssay, TypePresentation, TypeQuiz, TypeExam}

// String returns the display string, which doubles as the wire value.
func (t Type) String() string { return string(t) }

// ParseType maps a wire string to a Type. Unrecognized strings fall back to
// TypeHomework with ok=false so the caller can log the drift.
func ParseType(raw string) (Type, bool) {
	for _, t := range AllTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return TypeHomework, false
}
