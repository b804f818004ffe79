package main

import (
	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	universityHandler     *handlers.UniversityHandler
	programHandler        *handlers.ProgramHandler
	applicationHandler    *handlers.ApplicationHandler
	userHandler           *handlers.UserHandler
	scrapeRequestHandler  *handlers.ScrapeRequestHandler
	statsHandler          *handlers.StatsHandler
	idempotencyMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// University routes (public read)
		universities := v1.Group("/universities")
		{
			universities.GET("", d.universityHandler.ListUniversities)
			universities.GET("/search", d.universityHandler.SearchUniversities)
			universities.GET("/top", d.universityHandler.TopRanked)
			universities.GET("/open-admissions", d.universityHandler.OpenAdmissions)
			universities.GET("/locations", d.universityHandler.Locations)
			universities.GET("/:id", d.universityHandler.GetUniversity)
			universities.GET("/:id/programs", d.universityHandler.GetPrograms)
			universities.POST("", d.universityHandler.CreateUniversity)
			universities.PUT("/:id", d.universityHandler.UpdateUniversity)
			universities.DELETE("/:id", d.universityHandler.DeleteUniversity)
		}

		programs := v1.Group("/programs")
		{
			programs.POST("", d.programHandler.CreateProgram)
			programs.GET("/:id", d.programHandler.GetProgram)
			programs.PUT("/:id", d.programHandler.UpdateProgram)
			programs.DELETE("/:id", d.programHandler.DeleteProgram)
		}

		// Application API (caller identity required)
		applications := v1.Group("/applications")
		{
			applications.GET("/user", d.applicationHandler.ListUserApplications)
			applications.POST("", createApplicationChain(d)...)
			applications.GET("/:id", d.applicationHandler.GetApplication)
			applications.PUT("/:id", d.applicationHandler.UpdateApplication)
			applications.PUT("/:id/status", d.applicationHandler.UpdateApplicationStatus)
			applications.DELETE("/:id", d.applicationHandler.DeleteApplication)
		}

		users := v1.Group("/users")
		{
			users.POST("", d.userHandler.CreateProfile)
			users.GET("/me", d.userHandler.GetProfile)
			users.PUT("/me", d.userHandler.UpdateProfile)
			users.DELETE("/me", d.userHandler.DeleteProfile)
			users.POST("/me/login", d.userHandler.RecordLogin)
		}

		scrapeRequests := v1.Group("/scrape-requests")
		{
			scrapeRequests.POST("", d.scrapeRequestHandler.SubmitScrapeRequest)
			scrapeRequests.GET("", d.scrapeRequestHandler.ListScrapeRequests)
			scrapeRequests.PUT("/:id/status", d.scrapeRequestHandler.UpdateScrapeRequestStatus)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/stats", d.statsHandler.GetDashboard)
		}
	}
}

// createApplicationChain puts the idempotency middleware in front of
// POST /applications when one is configured.
func createApplicationChain(d routeDeps) []gin.HandlerFunc {
	if d.idempotencyMiddleware == nil {
		return []gin.HandlerFunc{d.applicationHandler.CreateApplication}
	}
	return []gin.HandlerFunc{d.idempotencyMiddleware, d.applicationHandler.CreateApplication}
}
