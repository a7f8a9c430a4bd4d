package api

import (
	"alcyxob/fitness-notes/internal/service"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func init() {
	// Binding errors name JSON fields, matching the domain validator.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(
	logger logrus.FieldLogger,
	workoutService service.WorkoutService,
	diagnosticsService service.DiagnosticsService,
) *gin.Engine {
	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(logger),
		RecoveryMiddleware(),
		CORSMiddleware(),
	)
	SetupRoutes(router, workoutService, diagnosticsService)
	return router
}

func SetupRoutes(
	router *gin.Engine,
	workoutService service.WorkoutService,
	diagnosticsService service.DiagnosticsService,
) {
	workoutHandler := NewWorkoutHandler(workoutService)
	diagnosticsHandler := NewDiagnosticsHandler(diagnosticsService)

	router.GET("/", diagnosticsHandler.Root)
	router.GET("/test", diagnosticsHandler.Status)

	apiGroup := router.Group("/api")
	{
		// --- Workout Routes ---
		workoutGroup := apiGroup.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Not Found")
	})
}
