package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

// WorkoutDate is a calendar date without a time of day.
type WorkoutDate struct {
	time.Time
}

// NewWorkoutDate truncates t to midnight UTC of its calendar day.
func NewWorkoutDate(t time.Time) WorkoutDate {
	y, m, d := t.Date()
	return WorkoutDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseWorkoutDate parses a YYYY-MM-DD string.
func ParseWorkoutDate(s string) (WorkoutDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return WorkoutDate{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return WorkoutDate{Time: t}, nil
}

func (d WorkoutDate) String() string {
	return d.Time.Format(DateLayout)
}

func (d WorkoutDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *WorkoutDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("workout_date must be a string in YYYY-MM-DD format")
	}
	parsed, err := ParseWorkoutDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
