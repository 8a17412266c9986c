package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/controllers"
	"github.com/knowyourcountry/community-backend/middleware"
	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	// Public endpoints; optional auth lets authors preview their own drafts.
	public := api.Group("/")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/health", controllers.HealthCheck)
		public.GET("/search", controllers.Search)
		public.POST("/contact", controllers.ContactForm)

		public.POST("/auth/register", controllers.Register)
		public.POST("/auth/login", controllers.Login)
		public.POST("/auth/forgot-password", controllers.RequestPasswordReset)
		public.POST("/auth/reset-password", controllers.ResetPassword)

		public.GET("/schools", controllers.GetSchools)
		public.GET("/schools/:id", controllers.GetSchoolDetail)
		public.GET("/schools/:id/activities", controllers.GetSchoolActivities)
		public.GET("/activities/:id", controllers.GetActivityDetail)

		public.POST("/volunteers/register", controllers.RegisterVolunteer)
		public.GET("/volunteers/confirm", controllers.ConfirmVolunteerEmail)

		public.GET("/articles", controllers.GetArticles)
		public.GET("/articles/:slug", controllers.GetArticleBySlug)

		public.GET("/quizzes", controllers.GetQuizzes)
		public.GET("/quizzes/:id", controllers.GetQuizDetail)

		public.GET("/media", controllers.GetMediaList)
		public.GET("/media/:id", controllers.GetMediaDetail)
		public.GET("/collections", controllers.GetCollections)
		public.GET("/collections/:id", controllers.GetCollectionDetail)
	}

	// Anything below needs a signed-in user.
	authed := api.Group("/")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/auth/profile", controllers.GetProfile)
		authed.PUT("/auth/profile", controllers.UpdateProfile)
		authed.PUT("/auth/change-password", controllers.ChangePassword)

		authed.GET("/notifications", controllers.GetNotifications)
		authed.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
		authed.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

		authed.GET("/quizzes/:id/take", controllers.GetQuizTakePage)
		authed.POST("/quizzes/:id/submit", controllers.SubmitQuiz)
		authed.GET("/attempts/:id", controllers.GetAttemptResult)
		authed.GET("/my/attempts", controllers.GetMyAttempts)

		authed.POST("/articles/:id/comments", controllers.AddArticleComment)
		authed.POST("/media", controllers.UploadMedia)
		authed.POST("/media/:id/rate", controllers.RateMedia)
		authed.POST("/media/:id/comments", controllers.AddMediaComment)
		authed.POST("/collections", controllers.CreateCollection)
		authed.POST("/collections/:id/items", controllers.AddToCollection)
	}

	// Content authoring: volunteers and up.
	authors := api.Group("/")
	authors.Use(middleware.AuthMiddleware())
	authors.Use(middleware.RequireRoles(
		string(models.RoleVolunteer),
		string(models.RoleCoordinator),
		string(models.RoleAdmin),
	))
	{
		authors.POST("/articles", controllers.CreateArticle)
		authors.PUT("/articles/:id", controllers.UpdateArticle)
		authors.DELETE("/articles/:id", controllers.DeleteArticle)

		authors.POST("/quizzes", controllers.CreateQuiz)
		authors.PUT("/quizzes/:id", controllers.UpdateQuiz)
		authors.PUT("/quizzes/:id/publish", controllers.PublishQuiz)
		authors.POST("/quizzes/:id/questions", controllers.AddQuestion)
		authors.DELETE("/quizzes/:id/questions/:question_id", controllers.DeleteQuestion)
	}

	// School management: coordinators within their school, admins anywhere.
	managers := api.Group("/")
	managers.Use(middleware.AuthMiddleware())
	managers.Use(middleware.RequireRoles(
		string(models.RoleCoordinator),
		string(models.RoleAdmin),
	))
	{
		managers.PUT("/schools/:id", controllers.UpdateSchool)
		managers.GET("/schools/:id/coordinators", controllers.GetSchoolCoordinators)
		managers.POST("/schools/:id/activities", controllers.CreateActivity)
		managers.PUT("/activities/:id", controllers.UpdateActivity)
		managers.PUT("/activities/:id/status", controllers.UpdateActivityStatus)

		managers.GET("/volunteers", controllers.GetVolunteers)
		managers.GET("/volunteers/export", controllers.ExportVolunteers)
		managers.GET("/volunteers/:id", controllers.GetVolunteerDetail)
		managers.PUT("/volunteers/:id", controllers.UpdateVolunteer)
		managers.PUT("/volunteers/:id/status", controllers.ToggleVolunteerStatus)
		managers.POST("/volunteers/:id/contributions", controllers.AddContribution)

		managers.POST("/reports", controllers.CreateReport)
		managers.GET("/reports", controllers.GetReports)
		managers.GET("/reports/:id", controllers.GetReportDetail)
		managers.POST("/reports/:id/metrics", controllers.AddReportMetric)

		managers.GET("/performance-reports", controllers.GetPerformanceReports)
		managers.GET("/performance-reports/:id", controllers.GetPerformanceReportDetail)
	}

	// Admin-only surface.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(string(models.RoleAdmin)))
	{
		admin.GET("/dashboard", controllers.GetDashboardStats)

		admin.GET("/users", controllers.GetUsers)
		admin.GET("/users/:id", controllers.GetUserDetail)
		admin.PUT("/users/:id/role", controllers.UpdateUserRole)
		admin.PUT("/users/:id/active", controllers.ToggleUserActive)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.POST("/schools", controllers.CreateSchool)
		admin.GET("/schools/export", controllers.ExportSchools)

		admin.PUT("/articles/:id/publish", controllers.PublishArticle)

		admin.GET("/media/pending", controllers.GetPendingMedia)
		admin.PUT("/media/:id/approve", controllers.ApproveMedia)
		admin.DELETE("/media/:id", controllers.RejectMedia)
		admin.PUT("/media/:id/featured", controllers.ToggleMediaFeatured)

		admin.GET("/comments/pending", controllers.GetPendingComments)
		admin.PUT("/comments/:kind/:id", controllers.ModerateComment)

		admin.PUT("/reports/:id/review", controllers.ReviewReport)
		admin.POST("/performance-reports", controllers.CreatePerformanceReport)
		admin.POST("/performance-reports/:id/sections", controllers.AddReportSection)
		admin.POST("/performance-reports/:id/pdf", controllers.RegeneratePerformanceReportPDF)

		admin.POST("/announcements", controllers.BroadcastAnnouncement)
	}

	// Websocket endpoints live outside /api so proxies can route them apart.
	r.GET("/ws/notifications", ws.HandleNotificationWebSocket)
	r.GET("/ws/announcements", ws.HandleAnnouncementWebSocket)
}
