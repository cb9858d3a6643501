package app

import (
	"mentorhub_backend/docs"
	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/middleware"
	"mentorhub_backend/internal/model"
	"mentorhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/forgot-password", c.auth.ForgotPassword)
			auth.POST("/reset-password", c.auth.ResetPassword)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(cfg, s.auth))
		{
			authed.POST("/auth/logout", c.auth.Logout)
			authed.GET("/auth/me", c.auth.Me)

			users := authed.Group("/users")
			{
				users.GET("/profile", c.user.GetProfile)
				users.PUT("/profile", c.user.UpdateProfile)
				users.POST("/avatar", c.user.UploadAvatar)
				users.GET("/mentors", c.user.ListMentors)
			}

			sessions := authed.Group("/sessions")
			{
				sessions.GET("/:id", c.session.Get)

				student := sessions.Group("")
				student.Use(middleware.RoleMiddleware(model.Student))
				{
					student.GET("/student-dashboard", c.dashboard.GetStudentDashboard)
					student.PUT("/weekly-goal", c.dashboard.UpdateWeeklyGoal)
					student.POST("/:id/register", c.session.Register)
					student.POST("/:id/unregister", c.session.Unregister)
				}

				mentor := sessions.Group("")
				mentor.Use(middleware.RoleMiddleware(model.Mentor))
				{
					mentor.GET("/mentor-dashboard", c.dashboard.GetMentorDashboard)
					mentor.POST("", c.session.Create)
					mentor.PUT("/:id", c.session.Update)
					mentor.DELETE("/:id", c.session.Delete)
					mentor.POST("/:id/start", c.session.Start)
					mentor.POST("/:id/end", c.session.End)
					mentor.POST("/:id/cancel", c.session.Cancel)
					mentor.POST("/:id/recording", c.session.UploadRecording)
					mentor.GET("/:id/attendance", c.attendance.GetRoster)
					mentor.POST("/:id/attendance", c.attendance.Mark)
				}
			}
		}
	}
}
