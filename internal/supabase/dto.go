package supabase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/model"
)

// wireTimeLayout is how timestamps are written: ISO-8601 with fractional
// seconds, matching what PostgREST emits for timestamptz columns.
const wireTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// wireTimeParseLayouts are tried in priority order when decoding. The last
// entry accepts the fixed numeric offset form some servers emit ("+0000").
var wireTimeParseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// wireTime is a time.Time with the wire timestamp encoding.
type wireTime struct {
	time.Time
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(wireTimeLayout))
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp is not a string: %w", err)
	}
	for _, layout := range wireTimeParseLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid ISO-8601 timestamp %q", raw)
}

// assignmentRecord is the wire representation of an Assignment. UserID is
// only populated on upsert, where rows are tagged with their owner.
type assignmentRecord struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Name      string    `json:"name"`
	Course    string    `json:"course"`
	Type      string    `json:"type"`
	DueAt     wireTime  `json:"due_at"`
	CreatedAt wireTime  `json:"created_at"`
	UpdatedAt wireTime  `json:"updated_at"`
	UserID    string    `json:"user_id,omitempty"`
}

// newAssignmentRecord maps an Assignment to its wire form. A nil owner is
// allowed for contexts that do not tag rows (encoding for comparison).
func newAssignmentRecord(a model.Assignment, userID uuid.UUID) assignmentRecord {
	rec := assignmentRecord{
		ID:        a.ID,
		Status:    a.Status.String(),
		Name:      a.Name,
		Course:    a.Course,
		Type:      a.Type.String(),
		DueAt:     wireTime{a.DueAt},
		CreatedAt: wireTime{a.CreatedAt},
		UpdatedAt: wireTime{a.UpdatedAt},
	}
	if userID != uuid.Nil {
		rec.UserID = userID.String()
	}
	return rec
}

// toModel maps a wire record back to the domain type. Unrecognized enum
// strings fall back to their defaults rather than failing the decode; the
// drift is logged so server-side vocabulary changes stay visible.
func (r assignmentRecord) toModel() model.Assignment {
	status, ok := model.ParseStatus(r.Status)
	if !ok {
		slog.Warn("unknown assignment status on wire, using default",
			"id", r.ID,
			"status", r.Status,
			"default", status,
		)
	}
	typ, ok := model.ParseType(r.Type)
	if !ok {
		slog.Warn("unknown assignment type on wire, using default",
			"id", r.ID,
			"type", r.Type,
			"default", typ,
		)
	}
	return model.Assignment{
		ID:        r.ID,
		Status:    status,
		Name:      r.Name,
		Course:    r.Course,
		Type:      typ,
		DueAt:     r.DueAt.Time,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}
