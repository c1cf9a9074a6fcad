package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/controllers"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	Sections      *controllers.SectionController
	Enrollment    *controllers.EnrollmentController
	Notifications *controllers.NotificationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// Every scheduling route needs a caller
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	reviewers := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleInstructor)

	sections := authenticated.Group("/sections")
	{
		sections.GET("", c.Sections.ListSections)
		sections.GET("/:id", c.Sections.GetSection)

		admin := sections.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("", c.Sections.CreateSection)
			admin.POST("/batch", c.Sections.CreateSectionsBatch)
		}
	}

	authenticated.GET("/timetable", c.Sections.GetTimetable)

	requests := authenticated.Group("/enrollment-requests")
	{
		requests.POST("", authMiddleware.RoleRequired(models.RoleStudent), c.Enrollment.CreateRequest)
		requests.GET("", reviewers, c.Enrollment.ListRequests)
		requests.POST("/approve-all", reviewers, c.Enrollment.ApproveAll)
		requests.POST("/:id/approve", reviewers, c.Enrollment.ApproveRequest)
		requests.POST("/:id/reject", reviewers, c.Enrollment.RejectRequest)
	}

	authenticated.GET("/students/:studentId/eligibility/:courseId", c.Enrollment.GetEligibility)
	authenticated.GET("/notifications", c.Notifications.ListMine)
}
