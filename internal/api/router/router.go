package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"student-projects/internal/api/handler"
	"student-projects/internal/api/middleware"
	"student-projects/internal/pkg/config"
	"student-projects/internal/pkg/storage"
	"student-projects/internal/repository"
	"student-projects/internal/service"
	"student-projects/pkg/responses"
)

// Setup 设置路由
func Setup(cfg *config.Config, store storage.Store) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		responses.ErrorWithCode(c, 405, "方法不允许")
	})

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 获取数据库连接
	db := cfg.DB.(*gorm.DB)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// 初始化Service
	authz := service.NewAuthorizationService(userRepo, projectRepo, memberRepo)
	notificationService := service.NewNotificationService(notificationRepo, memberRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(
		userRepo, projectRepo, memberRepo, taskRepo, commentRepo, documentRepo,
		authz, notificationService, store,
	)
	taskService := service.NewTaskService(taskRepo, memberRepo, authz, notificationService, projectService)
	commentService := service.NewCommentService(commentRepo, userRepo, authz, notificationService)
	documentService := service.NewDocumentService(documentRepo, authz, notificationService, store)
	reportService := service.NewReportService(reportRepo, userRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)
	documentHandler := handler.NewDocumentHandler(documentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	reportHandler := handler.NewReportHandler(reportService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证(无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// 需要登录的接口
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/auth/me", authHandler.GetMe)
			authed.GET("/users", userHandler.List)

			// 项目
			authed.POST("/projects", projectHandler.Create)
			authed.GET("/projects", projectHandler.List)
			authed.GET("/projects/:id", projectHandler.Detail)
			authed.PUT("/projects/:id", projectHandler.Update)
			authed.GET("/projects/:id/tasks", taskHandler.ListByProject)
			authed.GET("/projects/:id/comments", commentHandler.ListByProject)
			authed.GET("/projects/:id/documents", documentHandler.ListByProject)

			// AJAX操作端点
			authed.POST("/add_task", taskHandler.Add)
			authed.POST("/update_task", taskHandler.UpdateStatus)
			authed.POST("/add_comment", commentHandler.Add)
			authed.POST("/upload_document", documentHandler.Upload)
			authed.POST("/update_project_status", projectHandler.UpdateStatus)
			authed.POST("/delete_project", projectHandler.Delete)
			authed.POST("/mark_notification_read", notificationHandler.MarkRead)
			authed.POST("/mark_all_notifications_read", notificationHandler.MarkAllRead)

			// 通知与文档
			authed.GET("/notifications", notificationHandler.List)
			authed.GET("/documents/:id/download", documentHandler.Download)

			// 报表(仅导师)
			authed.GET("/reports/summary", reportHandler.Summary)
		}
	}

	return r
}
