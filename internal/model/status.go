package model

// Status describes how far along an assignment is.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// String returns the display string, which doubles as the wire value.
func (s Status) String() string { return string(s) }

// IsCompleted reports whether the assignment is done.
func (s Status) IsCompleted() bool { return s == StatusCompleted }

// ParseStatus maps a wire string to a Status. Unrecognized strings fall back
// to StatusNotStarted with ok=false so the caller can log the drift.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return StatusNotStarted, false
}
