package service

import (
	"alcyxob/fitness-notes/internal/domain"
	"alcyxob/fitness-notes/internal/repository/memory"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func newTestWorkoutService(t *testing.T) (*workoutService, *memory.Store) {
	t.Helper()
	store := memory.NewStore("testdb")
	svc := NewWorkoutService(store).(*workoutService)
	return svc, store
}

func legDay() *domain.Workout {
	date, _ := domain.ParseWorkoutDate("2024-06-01")
	return &domain.Workout{
		Title:       strPtr("Leg Day"),
		WorkoutDate: &date,
		Exercises: []domain.Exercise{
			{Name: strPtr("Squat"), Sets: intPtr(3), Reps: intPtr(10), Weight: floatPtr(80)},
			{Name: strPtr("Lunge"), Sets: intPtr(2), Reps: intPtr(12)},
			{Name: strPtr("Bike"), Duration: intPtr(15), Notes: strPtr("easy")},
		},
	}
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	id, err := svc.CreateWorkout(ctx, legDay())
	require.NoError(t, err)
	_, err = primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	record, err := svc.GetWorkout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, record["id"])
	assert.Equal(t, "Leg Day", record["title"])
	assert.Equal(t, "2024-06-01", record["workout_date"])
	assert.NotContains(t, record, "_id")
	assert.NotContains(t, record, "notes")
	assert.NotContains(t, record, "updated_at")

	exercises, ok := record["exercises"].([]any)
	require.True(t, ok, "exercises should be a slice, got %T", record["exercises"])
	require.Len(t, exercises, 3)
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.(map[string]any)["name"].(string)
	}
	assert.Equal(t, []string{"Squat", "Lunge", "Bike"}, names)

	squat := exercises[0].(map[string]any)
	assert.EqualValues(t, 3, squat["sets"])
	assert.EqualValues(t, 10, squat["reps"])
	assert.EqualValues(t, 80.0, squat["weight"])
	assert.NotContains(t, squat, "duration")
}

func TestCreateDefaultsExercises(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	id, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr("Rest Day")})
	require.NoError(t, err)

	record, err := svc.GetWorkout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []any{}, record["exercises"])
}

func TestCreateKeepsEmptyText(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	id, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr(""), Exercises: []domain.Exercise{{Name: strPtr("")}}})
	require.NoError(t, err)

	record, err := svc.GetWorkout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", record["title"])
	exercises := record["exercises"].([]any)
	require.Len(t, exercises, 1)
	assert.Equal(t, "", exercises[0].(map[string]any)["name"])
}

func TestCreateRejectsNegativeValuesWithoutWriting(t *testing.T) {
	svc, store := newTestWorkoutService(t)

	cases := map[string]domain.Exercise{
		"sets":     {Name: strPtr("a"), Sets: intPtr(-1)},
		"reps":     {Name: strPtr("a"), Reps: intPtr(-1)},
		"weight":   {Name: strPtr("a"), Weight: floatPtr(-2.5)},
		"duration": {Name: strPtr("a"), Duration: intPtr(-30)},
	}
	for field, ex := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := svc.CreateWorkout(context.Background(), &domain.Workout{Title: strPtr("x"), Exercises: []domain.Exercise{ex}})
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Contains(t, err.Error(), field)
		})
	}
	assert.Zero(t, store.WriteCount())
}

func TestCreateStoreFailure(t *testing.T) {
	svc, store := newTestWorkoutService(t)
	store.FailWith(errors.New("server selection timeout"))

	_, err := svc.CreateWorkout(context.Background(), legDay())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestListWorkouts(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	records, err := svc.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr(fmt.Sprintf("w%d", i))})
		require.NoError(t, err)
	}

	records, err = svc.ListWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, records, n)
	seen := map[any]bool{}
	for _, r := range records {
		assert.NotContains(t, r, "_id")
		seen[r["id"]] = true
	}
	assert.Len(t, seen, n)
}

func TestListWorkoutsCapped(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	for i := 0; i < ListLimit+5; i++ {
		_, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr("w")})
		require.NoError(t, err)
	}
	records, err := svc.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.Len(t, records, ListLimit)
}

func TestGetWorkoutErrors(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	_, err := svc.GetWorkout(ctx, "not-a-valid-id")
	assert.ErrorIs(t, err, ErrInvalidWorkoutID)

	_, err = svc.GetWorkout(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestUpdateWorkout(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	original := legDay()
	original.Notes = strPtr("before")
	id, err := svc.CreateWorkout(ctx, original)
	require.NoError(t, err)

	replacement := &domain.Workout{
		Title:     strPtr("Leg Day"),
		Notes:     strPtr("felt strong"),
		Exercises: []domain.Exercise{{Name: strPtr("Deadlift"), Sets: intPtr(5), Reps: intPtr(5), Weight: floatPtr(120)}},
	}
	require.NoError(t, svc.UpdateWorkout(ctx, id, replacement))

	record, err := svc.GetWorkout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, record["id"])
	assert.Equal(t, "felt strong", record["notes"])
	assert.Equal(t, fixed.Format(time.RFC3339Nano), record["updated_at"])
	// Full replace: the date was not resent, so it is gone.
	assert.NotContains(t, record, "workout_date")
	exercises := record["exercises"].([]any)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Deadlift", exercises[0].(map[string]any)["name"])
}

func TestUpdateWorkoutErrors(t *testing.T) {
	svc, store := newTestWorkoutService(t)
	ctx := context.Background()

	err := svc.UpdateWorkout(ctx, primitive.NewObjectID().Hex(), &domain.Workout{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	err = svc.UpdateWorkout(ctx, "123", &domain.Workout{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrInvalidWorkoutID)

	id, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr("x")})
	require.NoError(t, err)
	writes := store.WriteCount()
	err = svc.UpdateWorkout(ctx, id, &domain.Workout{})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, writes, store.WriteCount())
}

func TestDeleteWorkout(t *testing.T) {
	svc, _ := newTestWorkoutService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteWorkout(ctx, primitive.NewObjectID().Hex()), ErrWorkoutNotFound)
	assert.ErrorIs(t, svc.DeleteWorkout(ctx, "zz"), ErrInvalidWorkoutID)

	id, err := svc.CreateWorkout(ctx, legDay())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteWorkout(ctx, id))
	assert.ErrorIs(t, svc.DeleteWorkout(ctx, id), ErrWorkoutNotFound)

	_, err = svc.GetWorkout(ctx, id)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutServiceWithoutStore(t *testing.T) {
	svc := NewWorkoutService(nil)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	_, err := svc.CreateWorkout(ctx, &domain.Workout{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = svc.ListWorkouts(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = svc.GetWorkout(ctx, id)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, svc.UpdateWorkout(ctx, id, &domain.Workout{Title: strPtr("x")}), ErrStoreUnavailable)
	assert.ErrorIs(t, svc.DeleteWorkout(ctx, id), ErrStoreUnavailable)
}

func TestJSONValueNormalizesNestedDocuments(t *testing.T) {
	id := primitive.NewObjectID()
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	got := toRecord(map[string]any{
		"_id":          id,
		"workout_date": primitive.NewDateTimeFromTime(when),
		"updated_at":   primitive.NewDateTimeFromTime(when),
		"exercises": primitive.A{
			primitive.D{{Key: "name", Value: "Row"}},
		},
	})

	assert.Equal(t, id.Hex(), got["id"])
	assert.Equal(t, "2024-01-01", got["workout_date"])
	assert.Equal(t, "2024-01-01T12:00:00Z", got["updated_at"])
	assert.Equal(t, []any{map[string]any{"name": "Row"}}, got["exercises"])
}
