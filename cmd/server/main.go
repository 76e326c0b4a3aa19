package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/config"
	"github.com/rbgonzales/campus-engagement-api/internal/constants"
	"github.com/rbgonzales/campus-engagement-api/internal/database"
	"github.com/rbgonzales/campus-engagement-api/internal/handlers"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware; Redis in production, cookie store otherwise
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Uploaded files are served straight off disk
	files := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgUnitRepo := repository.NewOrgUnitRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	adminService := services.NewAdminService(userRepo, clubRepo, eventRepo)
	orgUnitService := services.NewOrgUnitService(orgUnitRepo)
	clubService := services.NewClubService(clubRepo, userRepo)
	eventService := services.NewEventService(eventRepo, clubRepo, files)
	announcementService := services.NewAnnouncementService(announcementRepo, clubRepo, files)
	rsvpService := services.NewRSVPService(rsvpRepo, eventRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	institutionHandler := handlers.NewInstitutionHandler(orgUnitService, clubService, eventService, announcementService, files)
	employeeHandler := handlers.NewEmployeeHandler(clubService, eventService, announcementService, files)
	studentHandler := handlers.NewStudentHandler(clubService, eventService, announcementService, rsvpService, files)
	eventsHandler := handlers.NewEventsHandler(clubService, eventService, announcementService, rsvpService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Campus Engagement API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register/student", authHandler.RegisterStudent)
			auth.POST("/register/employee", authHandler.RegisterEmployee)
			auth.POST("/register/institution", authHandler.RegisterInstitution)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Super-admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleSuperAdmin))
		{
			admin.GET("/institutions", adminHandler.ListInstitutions)
			admin.POST("/institutions/:id/approve", adminHandler.ApproveInstitution)
			admin.POST("/institutions/:id/reject", adminHandler.RejectInstitution)
			admin.GET("/stats", adminHandler.Stats)
		}

		// Institution admin routes
		institution := api.Group("/institution")
		institution.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleInstitution))
		{
			institution.POST("/colleges", institutionHandler.CreateCollege)
			institution.GET("/colleges", institutionHandler.ListColleges)
			institution.PUT("/colleges/:id", institutionHandler.UpdateCollege)
			institution.DELETE("/colleges/:id", institutionHandler.DeleteCollege)
			institution.POST("/departments", institutionHandler.CreateDepartment)
			institution.GET("/departments", institutionHandler.ListDepartments)
			institution.POST("/programs", institutionHandler.CreateProgram)
			institution.GET("/programs", institutionHandler.ListPrograms)

			institution.POST("/clubs", institutionHandler.CreateClub)
			institution.GET("/clubs", institutionHandler.ListClubs)
			institution.POST("/clubs/:id/approve", institutionHandler.ApproveClub)
			institution.POST("/clubs/:id/suspend", institutionHandler.SuspendClub)
			institution.POST("/clubs/:id/advisor", institutionHandler.AssignAdvisor)

			institution.POST("/events", institutionHandler.CreateEvent)
			institution.GET("/events/pending", institutionHandler.ListPendingEvents)
			institution.POST("/events/:id/approve", institutionHandler.ApproveEvent)
			institution.POST("/events/:id/reject", institutionHandler.RejectEvent)
			institution.GET("/announcements/pending", institutionHandler.ListPendingAnnouncements)
			institution.POST("/announcements/:id/approve", institutionHandler.ApproveAnnouncement)
			institution.POST("/announcements/:id/reject", institutionHandler.RejectAnnouncement)
		}

		// Advisor routes
		employee := api.Group("/employee")
		employee.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleEmployee))
		{
			employee.GET("/clubs", employeeHandler.ListAdvisedClubs)
			employee.POST("/clubs/:id/events", employeeHandler.CreateClubEvent)
			employee.POST("/clubs/:id/announcements", employeeHandler.CreateClubAnnouncement)
			employee.PUT("/clubs/:id/members/:user_id/role", employeeHandler.SetMemberRole)
			employee.POST("/events/:id/approve", employeeHandler.ApproveEvent)
			employee.POST("/events/:id/publish", employeeHandler.PublishEvent)
			employee.POST("/events/:id/reject", employeeHandler.RejectEvent)
			employee.POST("/announcements/:id/approve", employeeHandler.ApproveAnnouncement)
			employee.POST("/announcements/:id/publish", employeeHandler.PublishAnnouncement)
			employee.POST("/announcements/:id/reject", employeeHandler.RejectAnnouncement)
		}

		// Student routes
		student := api.Group("/student")
		student.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleStudent))
		{
			student.POST("/clubs", studentHandler.CreateClub)
			student.POST("/clubs/:id/join", studentHandler.JoinClub)
			student.POST("/clubs/:id/events", studentHandler.CreateClubEvent)
			student.POST("/clubs/:id/announcements", studentHandler.CreateClubAnnouncement)
			student.PUT("/events/:id/rsvp", studentHandler.SetRSVP)
			student.DELETE("/events/:id/rsvp", studentHandler.ClearRSVP)
			student.GET("/rsvps", studentHandler.ListMyRSVPs)
		}

		// Shared authenticated routes
		shared := api.Group("")
		shared.Use(middleware.RequireAuth())
		{
			shared.GET("/events", eventsHandler.ListFeed)
			shared.GET("/events/:id", eventsHandler.GetEvent)
			shared.GET("/events/:id/rsvp-counts", eventsHandler.GetRSVPCounts)
			shared.DELETE("/events/:id", eventsHandler.DeleteEvent)
			shared.DELETE("/announcements/:id", eventsHandler.DeleteAnnouncement)
			shared.GET("/clubs", eventsHandler.ListClubs)
			shared.GET("/clubs/:id", eventsHandler.GetClub)
			shared.GET("/clubs/:id/announcements", eventsHandler.ListClubAnnouncements)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore builds the configured session backend. Redis keeps
// sessions across restarts; the cookie store needs no extra service and is
// what the tests use.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "redis" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err := redisStore.NewStore(
			10,
			"tcp",
			redisAddr,
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		configureStore(store, cfg)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	configureStore(store, cfg)
	return store, nil
}

func configureStore(store sessions.Store, cfg *config.Config) {
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
}
