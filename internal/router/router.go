package router

import (
	"time"

	"Club_Portal/internal/handler"
	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	DevMode        bool
	AllowedOrigins []string
}

func InitRouter(svc *service.Services, opts Options) *gin.Engine {
	if !opts.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(middleware.ErrorHandler(opts.DevMode))
	r.Use(middleware.Authenticate(svc.Sessions))

	user := handler.NewUserHandler(svc.Auth)
	profile := handler.NewProfileHandler(svc.Profiles, svc.Connections)
	event := handler.NewEventHandler(svc.Events, svc.Attendees)
	blog := handler.NewBlogHandler(svc.Blogs)
	timeline := handler.NewTimelineHandler(svc.Timeline)
	poll := handler.NewPollHandler(svc.Polls)
	admin := handler.NewAdminHandler(svc.Admin, svc.Blogs, svc.Permissions)

	auth := middleware.RequireAuth()

	r.GET("/health", handler.Health)

	// accounts
	r.POST("/signup", user.Signup)
	r.POST("/signin", user.Signin)
	r.POST("/signout", auth, user.Signout)
	r.GET("/me", auth, user.Me)

	// profiles and connections
	profileGroup := r.Group("/profile")
	{
		profileGroup.GET("/connections", auth, profile.Connections)
		profileGroup.GET("/:identifier", profile.Get)
		profileGroup.POST("", auth, profile.Create)
		profileGroup.PUT("/:username", auth, profile.Update)
		profileGroup.POST("/connect/:userId", auth, profile.Connect)
		profileGroup.POST("/connect/:userId/accept", auth, profile.Accept)
		profileGroup.POST("/connect/:userId/block", auth, profile.Block)
		profileGroup.DELETE("/connect/:userId", auth, profile.Disconnect)
	}

	// events and attendance
	eventGroup := r.Group("/events")
	{
		eventGroup.GET("", event.List)
		eventGroup.GET("/:id", event.Get)
		eventGroup.POST("", auth, event.Create)
		eventGroup.PUT("/:id", auth, event.Update)
		eventGroup.DELETE("/:id", auth, event.Delete)
		eventGroup.POST("/:id/rsvp", auth, event.RSVP)
		eventGroup.DELETE("/:id/rsvp", auth, event.CancelRSVP)
		eventGroup.POST("/:id/checkin/:accountId", auth, event.CheckIn)
		eventGroup.GET("/:id/attendees", auth, event.Attendees)
	}

	blogGroup := r.Group("/blogs")
	{
		blogGroup.GET("", blog.List)
		blogGroup.GET("/:id", blog.Get)
		blogGroup.POST("", auth, blog.Create)
		blogGroup.PUT("/:id", auth, blog.Update)
		blogGroup.DELETE("/:id", auth, blog.Delete)
	}

	timelineGroup := r.Group("/timeline")
	timelineGroup.Use(auth)
	{
		timelineGroup.GET("", timeline.List)
		timelineGroup.GET("/:id", timeline.Get)
		timelineGroup.POST("", timeline.Create)
		timelineGroup.PUT("/:id", timeline.Update)
		timelineGroup.DELETE("/:id", timeline.Delete)
	}

	// polls
	pollGroup := r.Group("/polls")
	{
		pollGroup.GET("", poll.List)
		pollGroup.GET("/:id", poll.Get)
		pollGroup.POST("", auth, poll.Create)
		pollGroup.POST("/:id/vote", auth, poll.Vote)
		pollGroup.PUT("/:id/close", auth, poll.Close)
		pollGroup.DELETE("/:id", auth, poll.Delete)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(auth)
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.PUT("/users/:id/role", admin.ChangeRole)
		adminGroup.PUT("/users/:id/activate", admin.Activate)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)
		adminGroup.PUT("/blogs/:id/approve", admin.ApproveBlog)
		adminGroup.GET("/roles", admin.ListRoles)
		adminGroup.GET("/roles/:role", admin.GetRole)
		adminGroup.PUT("/roles/:role", admin.ReplaceRole)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
