package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/jobdeck/backend/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Job         *apiHandler.JobHandler
	Application *apiHandler.ApplicationHandler
	Profile     *apiHandler.ProfileHandler
	Message     *apiHandler.MessageHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)

	// Jobs. Listing a single job is public; static segments (myjobs,
	// analytics/dashboard) must not collide with the {id} parameter.
	r.GET("/api/v1/jobs", handlers.Job.PublicList)
	r.POST("/api/v1/jobs", authMiddleware(handlers.Job.Create))
	r.GET("/api/v1/jobs/myjobs", authMiddleware(handlers.Job.OwnerList))
	r.GET("/api/v1/jobs/analytics/dashboard", authMiddleware(handlers.Job.Dashboard))
	r.GET("/api/v1/jobs/{id}", handlers.Job.Get)
	r.PUT("/api/v1/jobs/{id}", authMiddleware(handlers.Job.Update))
	r.DELETE("/api/v1/jobs/{id}", authMiddleware(handlers.Job.Delete))
	r.PATCH("/api/v1/jobs/{id}/close", authMiddleware(handlers.Job.Close))
	r.PATCH("/api/v1/jobs/{id}/reopen", authMiddleware(handlers.Job.Reopen))
	r.GET("/api/v1/jobs/{id}/analytics", authMiddleware(handlers.Job.Analytics))
	r.POST("/api/v1/jobs/{id}/apply", authMiddleware(handlers.Application.Apply))

	// Applications
	r.GET("/api/v1/applications/job/{jobId}", authMiddleware(handlers.Application.ListForJob))
	r.GET("/api/v1/applications/my-applications", authMiddleware(handlers.Application.ListMine))
	r.PUT("/api/v1/applications/bulk-update", authMiddleware(handlers.Application.BulkUpdateStatus))
	r.POST("/api/v1/applications/bulk-notes", authMiddleware(handlers.Application.BulkSetNotes))
	r.GET("/api/v1/applications/export/csv/{jobId}", authMiddleware(handlers.Application.ExportCSV))
	r.PUT("/api/v1/applications/{id}", authMiddleware(handlers.Application.UpdateStatus))
	r.POST("/api/v1/applications/{id}/notes", authMiddleware(handlers.Application.SetNotes))

	// Profiles
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.Get))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.Update))
	r.POST("/api/v1/profile/documents", authMiddleware(handlers.Profile.AddDocument))
	r.DELETE("/api/v1/profile/documents/{docId}", authMiddleware(handlers.Profile.RemoveDocument))
	r.POST("/api/v1/profile/skills", authMiddleware(handlers.Profile.AddSkill))
	r.DELETE("/api/v1/profile/skills/{skillId}", authMiddleware(handlers.Profile.RemoveSkill))
	r.POST("/api/v1/profile/experience", authMiddleware(handlers.Profile.AddExperience))
	r.DELETE("/api/v1/profile/experience/{expId}", authMiddleware(handlers.Profile.RemoveExperience))
	r.GET("/api/v1/users/{id}", authMiddleware(handlers.Profile.View))

	// Messages
	r.POST("/api/v1/messages", authMiddleware(handlers.Message.Send))
	r.GET("/api/v1/messages/unread/count", authMiddleware(handlers.Message.UnreadCount))
	r.GET("/api/v1/messages/{userId}", authMiddleware(handlers.Message.Conversation))

	return r
}
