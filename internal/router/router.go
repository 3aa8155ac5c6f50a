package router

import (
	"context"
	"time"

	"attendly/config"
	"attendly/internal/domain"
	"attendly/internal/handler"
	"attendly/internal/middleware"
	"attendly/internal/repository"
	"attendly/internal/service"
	"attendly/internal/ws"
	"attendly/pkg/cloudinary"
	"attendly/pkg/ipinfo"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging

	// Repositories
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	locRepo := repository.NewOfficeLocationRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	annRepo := repository.NewAnnouncementRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	reminderHub := ws.NewReminderHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	ipLookup := ipinfo.NewClient(cfg.CheckIn.IPLookupEndpoint)
	attendanceSvc := service.NewAttendanceService(locRepo, settingRepo, recordRepo, ipLookup, cfg.CheckIn.PositionTimeout)
	reminderSvc := service.NewReminderService(context.Background(), reminderHub)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	checkInHandler := handler.NewCheckInHandler(attendanceSvc, reminderSvc, userRepo, recordRepo)
	locationHandler := handler.NewLocationHandler(locRepo)
	settingHandler := handler.NewSettingHandler(settingRepo)
	staffHandler := handler.NewStaffHandler(authSvc, userRepo, locRepo)
	branchHandler := handler.NewBranchHandler(branchRepo)
	announcementHandler := handler.NewAnnouncementHandler(annRepo, reminderHub)
	leaveHandler := handler.NewLeaveHandler(leaveRepo)
	uploadHandler := handler.NewUploadHandler(cloud, userRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()
	hrMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleHR)
	// Registered after authMw so authenticated traffic is keyed by user id,
	// not by the shared office IP.
	rateMw := middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateMw) // unauthenticated, keyed by client IP
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw, rateMw)
		{
			me.GET("", authHandler.Me)
			me.POST("/avatar", uploadHandler.UploadAvatar)
		}

		attendance := api.Group("/attendance")
		attendance.Use(authMw, rateMw)
		{
			attendance.POST("/checkin", checkInHandler.Attempt)
			attendance.GET("/today", checkInHandler.Today)
			attendance.POST("/remind", checkInHandler.Remind)
			attendance.GET("/records", checkInHandler.Records)
		}

		api.GET("/announcements", authMw, rateMw, announcementHandler.List)

		leave := api.Group("/leave")
		leave.Use(authMw, rateMw)
		{
			leave.POST("", leaveHandler.Create)
			leave.GET("/mine", leaveHandler.Mine)
			leave.GET("/pending", hrMw, leaveHandler.Pending)
			leave.POST("/:id/review", hrMw, leaveHandler.Review)
		}

		staff := api.Group("/staff")
		staff.Use(authMw, rateMw, hrMw)
		{
			staff.POST("", staffHandler.Create)
			staff.GET("", staffHandler.List)
			staff.GET("/:id", staffHandler.Get)
			staff.PATCH("/:id", staffHandler.Update)
			staff.DELETE("/:id", staffHandler.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, rateMw, adminMw)
		{
			admin.GET("/locations", locationHandler.List)
			admin.POST("/locations", locationHandler.Create)
			admin.PATCH("/locations/:id", locationHandler.Update)
			admin.DELETE("/locations/:id", locationHandler.Delete)

			admin.GET("/settings", settingHandler.List)
			admin.GET("/settings/distance-limit", settingHandler.GetDistanceLimit)
			admin.PUT("/settings/distance-limit", settingHandler.UpdateDistanceLimit)

			admin.GET("/branches", branchHandler.List)
			admin.POST("/branches", branchHandler.Create)
			admin.PATCH("/branches/:id", branchHandler.Update)
			admin.DELETE("/branches/:id", branchHandler.Delete)

			admin.POST("/announcements", announcementHandler.Create)
			admin.PATCH("/announcements/:id", announcementHandler.Update)
			admin.DELETE("/announcements/:id", announcementHandler.Delete)
		}
	}

	r.GET("/ws/reminders", ws.UpgradeReminderWS(&cfg.JWT, reminderHub))

	return r
}
