package api

import (
	"alcyxob/fitness-notes/internal/domain"
	"alcyxob/fitness-notes/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest is one exercise inside a WorkoutRequest.
type ExerciseRequest struct {
	Name     *string      `json:"name" binding:"required"`
	Sets     *WholeNumber `json:"sets" binding:"omitempty,min=0"`
	Reps     *WholeNumber `json:"reps" binding:"omitempty,min=0"`
	Weight   *float64     `json:"weight" binding:"omitempty,min=0"`
	Duration *WholeNumber `json:"duration" binding:"omitempty,min=0"` // Minutes
	Notes    *string      `json:"notes"`
}

// WorkoutRequest defines the expected JSON for creating or replacing a workout.
type WorkoutRequest struct {
	Title       *string             `json:"title" binding:"required"`
	WorkoutDate *domain.WorkoutDate `json:"workout_date"` // "YYYY-MM-DD"
	Notes       *string             `json:"notes"`
	Exercises   []ExerciseRequest   `json:"exercises" binding:"omitempty,dive"`
}

// ToDomain converts the request DTO into the domain schema.
func (r *WorkoutRequest) ToDomain() *domain.Workout {
	exercises := make([]domain.Exercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		exercises[i] = domain.Exercise{
			Name:     ex.Name,
			Sets:     ex.Sets.intPtr(),
			Reps:     ex.Reps.intPtr(),
			Weight:   ex.Weight,
			Duration: ex.Duration.intPtr(),
			Notes:    ex.Notes,
		}
	}
	return &domain.Workout{
		Title:       r.Title,
		WorkoutDate: r.WorkoutDate,
		Notes:       r.Notes,
		Exercises:   exercises,
	}
}

// CreateWorkoutResponse is returned by a successful create.
type CreateWorkoutResponse struct {
	ID string `json:"id"`
}

// ListWorkoutsResponse wraps the listed workouts.
type ListWorkoutsResponse struct {
	Items []service.WorkoutRecord `json:"items"`
}

// SuccessResponse acknowledges an update or delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body WorkoutRequest true "Workout details"
// @Success 200 {object} CreateWorkoutResponse
// @Failure 400 {object} ErrorResponse "Invalid input (validation error)"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	id, err := h.workoutService.CreateWorkout(c.Request.Context(), req.ToDomain())
	if err != nil {
		abortWithServiceError(c, err, "Failed to create workout.")
		return
	}

	c.JSON(http.StatusOK, CreateWorkoutResponse{ID: id})
}

// ListWorkouts godoc
// @Summary List workouts
// @Description Returns at most 100 workouts in store order.
// @Tags Workouts
// @Produce json
// @Success 200 {object} ListWorkoutsResponse
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	records, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workouts.")
		return
	}

	if records == nil {
		records = []service.WorkoutRecord{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, ListWorkoutsResponse{Items: records})
}

// GetWorkout godoc
// @Summary Get a workout by id
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} service.WorkoutRecord
// @Failure 400 {object} ErrorResponse "Malformed id"
// @Failure 404 {object} ErrorResponse "Workout not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	record, err := h.workoutService.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workout.")
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateWorkout godoc
// @Summary Replace a workout
// @Description Replaces every field of the workout and sets updated_at.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param workout body WorkoutRequest true "Replacement workout"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Malformed id or invalid input"
// @Failure 404 {object} ErrorResponse "Workout not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	err := h.workoutService.UpdateWorkout(c.Request.Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		abortWithServiceError(c, err, "Failed to update workout.")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Malformed id"
// @Failure 404 {object} ErrorResponse "Workout not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	err := h.workoutService.DeleteWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to delete workout.")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
