package service

import (
	"alcyxob/fitness-notes/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored field names.
const (
	fieldID          = "_id"
	fieldTitle       = "title"
	fieldWorkoutDate = "workout_date"
	fieldNotes       = "notes"
	fieldExercises   = "exercises"
	fieldUpdatedAt   = "updated_at"
)

// workoutDocument maps a validated workout onto its stored form.
// Absent optional fields are left out rather than stored as null.
func workoutDocument(w *domain.Workout) bson.D {
	doc := bson.D{{Key: fieldTitle, Value: domain.StringValue(w.Title)}}
	if w.WorkoutDate != nil {
		doc = append(doc, bson.E{Key: fieldWorkoutDate, Value: domain.NewWorkoutDate(w.WorkoutDate.Time).Time})
	}
	if w.Notes != nil {
		doc = append(doc, bson.E{Key: fieldNotes, Value: *w.Notes})
	}

	exercises := bson.A{}
	for _, ex := range w.Exercises {
		exercises = append(exercises, exerciseDocument(ex))
	}
	return append(doc, bson.E{Key: fieldExercises, Value: exercises})
}

func exerciseDocument(ex domain.Exercise) bson.D {
	doc := bson.D{{Key: "name", Value: domain.StringValue(ex.Name)}}
	if ex.Sets != nil {
		doc = append(doc, bson.E{Key: "sets", Value: *ex.Sets})
	}
	if ex.Reps != nil {
		doc = append(doc, bson.E{Key: "reps", Value: *ex.Reps})
	}
	if ex.Weight != nil {
		doc = append(doc, bson.E{Key: "weight", Value: *ex.Weight})
	}
	if ex.Duration != nil {
		doc = append(doc, bson.E{Key: "duration", Value: *ex.Duration})
	}
	if ex.Notes != nil {
		doc = append(doc, bson.E{Key: "notes", Value: *ex.Notes})
	}
	return doc
}

// toRecord converts a stored document to its transport form.
func toRecord(doc bson.M) WorkoutRecord {
	record := make(WorkoutRecord, len(doc))
	record["id"] = ""
	for key, value := range doc {
		switch key {
		case fieldID:
			record["id"] = jsonValue(value)
		case fieldWorkoutDate:
			record[key] = dateValue(value)
		default:
			record[key] = jsonValue(value)
		}
	}
	return record
}

func dateValue(v any) any {
	switch d := v.(type) {
	case primitive.DateTime:
		return d.Time().UTC().Format(domain.DateLayout)
	case time.Time:
		return d.UTC().Format(domain.DateLayout)
	default:
		return jsonValue(v)
	}
}

// jsonValue rewrites BSON-specific values so encoding/json renders them
// as plain strings, objects and arrays.
func jsonValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case primitive.M:
		return mapValue(val)
	case map[string]any:
		return mapValue(val)
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = jsonValue(e.Value)
		}
		return out
	case primitive.A:
		return sliceValue(val)
	case []any:
		return sliceValue(val)
	default:
		return v
	}
}

func mapValue(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = jsonValue(v)
	}
	return out
}

func sliceValue(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = jsonValue(v)
	}
	return out
}
