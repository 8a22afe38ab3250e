package api

import (
	"net/http"

	"alcyxob/reptrack/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	programService service.ProgramService,
	photoService service.PhotoService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	calculatorHandler := NewCalculatorHandler()
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	programHandler := NewProgramHandler(programService)
	photoHandler := NewPhotoHandler(photoService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile & Reports ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.GET("/nutrition", profileHandler.NutritionReport)
			profileGroup.GET("/fitness", profileHandler.FitnessReport)
		}

		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.POST("", profileHandler.LogMeasurement)
			measurementGroup.GET("", profileHandler.GetMeasurements)
		}

		// --- Stateless Calculators ---
		calcGroup := protected.Group("/calculators")
		{
			calcGroup.POST("/onerm", calculatorHandler.EstimateOneRM)
			calcGroup.POST("/bodyfat", calculatorHandler.EstimateBodyFat)
		}

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Workout Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", workoutHandler.StartSession)
			sessionGroup.GET("", workoutHandler.GetSessions)
			sessionGroup.GET("/:id", workoutHandler.GetSession)
			sessionGroup.POST("/:id/sets", workoutHandler.LogSet)
			sessionGroup.POST("/:id/cardio", workoutHandler.LogCardioResult)
			sessionGroup.PATCH("/:id/totals", workoutHandler.OverrideTotals)
			sessionGroup.POST("/:id/complete", workoutHandler.CompleteSession)
		}

		// --- Programs ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", programHandler.CreateTemplate)
			programGroup.GET("", programHandler.GetTemplates)
			programGroup.GET("/:id", programHandler.GetTemplate)
		}
		executionGroup := protected.Group("/executions")
		{
			executionGroup.POST("", programHandler.StartExecution)
			executionGroup.GET("", programHandler.GetExecutions)
			executionGroup.GET("/:id", programHandler.GetExecution)
			executionGroup.POST("/:id/advance", programHandler.AdvanceExecution)
		}

		// --- Progress Photos ---
		photoGroup := protected.Group("/photos")
		{
			photoGroup.POST("/upload-url", photoHandler.RequestUploadURL)
			photoGroup.POST("/confirm", photoHandler.ConfirmUpload)
			photoGroup.GET("", photoHandler.GetPhotos)
			photoGroup.GET("/:id/download-url", photoHandler.GetDownloadURL)
			photoGroup.DELETE("/:id", photoHandler.DeletePhoto)
		}
	}
}
