package routes

import (
	"dietcraft/controllers"
	"dietcraft/middlewares"
	"dietcraft/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rt *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	rc := controllers.NewRealtimeController(rt)

	user := r.Group("/user")
	user.Use(middlewares.UserMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.GET("/calculations", controllers.GetCalculations)
	}

	plans := r.Group("/diet-plans")
	plans.Use(middlewares.UserMiddleware())
	{
		plans.POST("/generate", controllers.GeneratePlan)
		plans.POST("/preview", controllers.PreviewPlan)
		plans.GET("/my-plan", controllers.MyPlan)
		plans.DELETE("/my-plan", controllers.DeletePlan)
		plans.GET("/weekly-ingredients", controllers.WeeklyIngredients)
		plans.POST("/adjust-targets", controllers.AdjustTargets)
		plans.POST("/email-checklist", controllers.EmailChecklist)
	}

	progress := r.Group("/progress")
	progress.Use(middlewares.UserMiddleware())
	{
		progress.POST("/meal", controllers.LogMeal)
		progress.POST("/water", controllers.LogWater)
		progress.POST("/steps", controllers.LogSteps)
		progress.POST("/weight", controllers.LogWeight)
		progress.GET("/today", controllers.TodayProgress)
		progress.GET("/weekly", controllers.WeeklyProgress)
		progress.GET("/weight", controllers.WeightProgress)
		progress.POST("/compensate", controllers.CompensateOverage)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.UserMiddleware())
	{
		ws.GET("/plan-events", rc.PlanEventsWS)
	}

	return r
}
