package service

import (
	"alcyxob/fitness-notes/internal/domain"
	"alcyxob/fitness-notes/internal/repository" // Import repository package
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// WorkoutCollection is the store collection holding workouts.
	WorkoutCollection = "workout"
	// ListLimit caps how many workouts a list call returns.
	ListLimit = 100
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrValidationFailed = errors.New("workout validation failed")
	ErrInvalidWorkoutID = errors.New("invalid workout id")
	ErrStoreUnavailable = errors.New("database not initialized")
)

// WorkoutRecord is a stored workout converted to JSON-safe values:
// the store key becomes "id" and dates become ISO-8601 strings.
type WorkoutRecord map[string]any

// --- Service Interface ---
type WorkoutService interface {
	CreateWorkout(ctx context.Context, workout *domain.Workout) (string, error)
	ListWorkouts(ctx context.Context) ([]WorkoutRecord, error)
	GetWorkout(ctx context.Context, workoutID string) (WorkoutRecord, error)
	UpdateWorkout(ctx context.Context, workoutID string, workout *domain.Workout) error
	DeleteWorkout(ctx context.Context, workoutID string) error
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	store repository.DocumentStore
	now   func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
// A nil store is allowed: every call then fails with ErrStoreUnavailable.
func NewWorkoutService(store repository.DocumentStore) WorkoutService {
	return &workoutService{
		store: store,
		now:   time.Now,
	}
}

// CreateWorkout validates and stores a new workout, returning its id.
func (s *workoutService) CreateWorkout(ctx context.Context, workout *domain.Workout) (string, error) {
	if err := validate(workout); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", ErrStoreUnavailable
	}

	id, err := s.store.CreateDocument(ctx, WorkoutCollection, workoutDocument(workout))
	if err != nil {
		return "", fmt.Errorf("create workout: %w", err)
	}
	return id, nil
}

// ListWorkouts returns at most ListLimit workouts in store order.
func (s *workoutService) ListWorkouts(ctx context.Context) ([]WorkoutRecord, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	docs, err := s.store.GetDocuments(ctx, WorkoutCollection, repository.Document{}, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	records := make([]WorkoutRecord, len(docs))
	for i, doc := range docs {
		records[i] = toRecord(doc)
	}
	return records, nil
}

// GetWorkout retrieves a single workout.
func (s *workoutService) GetWorkout(ctx context.Context, workoutID string) (WorkoutRecord, error) {
	id, err := parseWorkoutID(workoutID)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}

	doc, err := s.store.FindDocument(ctx, WorkoutCollection, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return toRecord(doc), nil
}

// UpdateWorkout replaces every field of a workout and stamps updated_at.
// Optional fields missing from the new body are removed from the document.
func (s *workoutService) UpdateWorkout(ctx context.Context, workoutID string, workout *domain.Workout) error {
	id, err := parseWorkoutID(workoutID)
	if err != nil {
		return err
	}
	if err := validate(workout); err != nil {
		return err
	}
	if s.store == nil {
		return ErrStoreUnavailable
	}

	set := repository.Document{}
	for _, e := range workoutDocument(workout) {
		set[e.Key] = e.Value
	}
	set[fieldUpdatedAt] = s.now().UTC()

	var unset []string
	if workout.WorkoutDate == nil {
		unset = append(unset, fieldWorkoutDate)
	}
	if workout.Notes == nil {
		unset = append(unset, fieldNotes)
	}

	err = s.store.ReplaceFields(ctx, WorkoutCollection, id, set, unset)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return fmt.Errorf("update workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout. Deleting an id twice reports
// ErrWorkoutNotFound the second time.
func (s *workoutService) DeleteWorkout(ctx context.Context, workoutID string) error {
	id, err := parseWorkoutID(workoutID)
	if err != nil {
		return err
	}
	if s.store == nil {
		return ErrStoreUnavailable
	}

	err = s.store.DeleteDocument(ctx, WorkoutCollection, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

func validate(workout *domain.Workout) error {
	if err := domain.ValidateWorkout(workout); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	workout.Normalize()
	return nil
}

func parseWorkoutID(workoutID string) (primitive.ObjectID, error) {
	id, err := repository.ParseID(workoutID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %w", ErrInvalidWorkoutID, err)
	}
	return id, nil
}
