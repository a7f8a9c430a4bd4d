// internal/domain/workout.go
package domain

// Workout is the schema of a single logged exercise session.
// It is the validated shape of a request body, not the stored document.
// Title and Name must be present but may be empty text.
type Workout struct {
	Title       *string      `json:"title" validate:"required"`
	WorkoutDate *WorkoutDate `json:"workout_date,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	Exercises   []Exercise   `json:"exercises" validate:"dive"` // Order is the workout sequence
}

// Exercise is one movement inside a Workout. It has no identity of its own.
type Exercise struct {
	Name     *string  `json:"name" validate:"required"`
	Sets     *int     `json:"sets,omitempty" validate:"omitempty,min=0"`
	Reps     *int     `json:"reps,omitempty" validate:"omitempty,min=0"`
	Weight   *float64 `json:"weight,omitempty" validate:"omitempty,min=0"`   // kg or lbs
	Duration *int     `json:"duration,omitempty" validate:"omitempty,min=0"` // Minutes, for cardio
	Notes    *string  `json:"notes,omitempty"`
}

// Normalize fills defaults the schema promises: exercises is never nil.
func (w *Workout) Normalize() {
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}
}

// StringValue returns *s, or "" when s is nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
