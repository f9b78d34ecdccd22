package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paxala/internal/access"
	"paxala/internal/auth"
	"paxala/internal/cache"
	"paxala/internal/config"
	"paxala/internal/database"
	"paxala/internal/handler"
	"paxala/internal/logging"
	"paxala/internal/middleware"
	"paxala/internal/notify"
	"paxala/internal/repository"
	"paxala/internal/service"
	"paxala/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	redis  *redis.Client
}

// Deps are the collaborators the router is built from.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Mailer  notify.Mailer
	Cache   cache.Cache
	Storage storage.Storage
}

func Init(cfg *config.Config) (*Server, error) {
	log := logging.New(cfg.Environment)

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("driver", cfg.DBDriver))

	if err := database.Prepare(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	var (
		contentCache cache.Cache = cache.Noop{}
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		contentCache = cache.NewRedisCache(redisClient, cfg.CacheTTL)
		log.Info("content cache: redis", zap.String("addr", cfg.RedisAddr))
	}

	store, err := storage.New(context.Background(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	engine, err := NewEngine(Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Mailer:  notify.New(cfg, log),
		Cache:   contentCache,
		Storage: store,
	})
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: engine,
		DB:     db,
		Config: cfg,
		Log:    log,
		redis:  redisClient,
	}, nil
}

// NewEngine wires repositories, services and handlers into a gin engine.
func NewEngine(d Deps) (*gin.Engine, error) {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	r := gin.New()
	r.Use(middleware.Recovery(d.Log), middleware.RequestLogger(d.Log), middleware.Locale())

	tokens := auth.NewTokenManager(d.Config.JWTSecret, d.Config.JWTExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	contactRepo := repository.NewContactRepository(d.DB)
	milestoneRepo := repository.NewMilestoneRepository(d.DB)
	taskRepo := repository.NewTaskRepository(d.DB)
	commentRepo := repository.NewCommentRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	inquiryRepo := repository.NewInquiryRepository(d.DB)
	contentRepo := repository.NewContentRepository(d.DB)

	// Initialize services
	projects := service.NewProjectService(projectRepo, userRepo, contactRepo)
	milestones := service.NewMilestoneService(projectRepo, milestoneRepo, d.Log)
	payments := service.NewPaymentService(projectRepo, milestoneRepo, d.Log)
	tasks := service.NewTaskService(milestoneRepo, taskRepo, userRepo, d.Log, d.Config.StrictTaskTransitions)
	bookings := service.NewBookingService(bookingRepo, d.Mailer, d.Log)
	inquiries := service.NewInquiryService(inquiryRepo, d.Mailer, d.Config.StudioInbox, d.Log)
	content := service.NewContentService(contentRepo, d.Cache, d.Log)

	// Initialize handlers
	guard := handler.NewGuard(projects)
	userHandler := handler.NewUserHandler(userRepo, tokens)
	adminUserHandler := handler.NewAdminUserHandler(service.NewUserService(userRepo))
	projectHandler := handler.NewProjectHandler(projects, payments, guard)
	contactHandler := handler.NewContactHandler(service.NewContactService(contactRepo, userRepo))
	milestoneHandler := handler.NewMilestoneHandler(milestones, payments, guard)
	taskHandler := handler.NewTaskHandler(tasks, milestones, guard)
	commentHandler := handler.NewCommentHandler(service.NewCommentService(commentRepo), guard)
	bookingHandler := handler.NewBookingHandler(bookings)
	inquiryHandler := handler.NewInquiryHandler(inquiries)
	contentHandler := handler.NewContentHandler(content)
	uploadHandler := handler.NewUploadHandler(storage.NewUploader(d.Storage, d.Config.MaxUploadMB))

	// Operational routes
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/readyz", readiness(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.Config.S3Bucket == "" {
		r.Static("/uploads", d.Config.UploadDir)
	}

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.POST("/bookings", bookingHandler.Create)
	r.GET("/bookings/availability", bookingHandler.Availability)
	r.POST("/inquiries", inquiryHandler.Create)
	r.GET("/blog", contentHandler.ListPosts)
	r.GET("/blog/:slug", contentHandler.GetPost)
	r.GET("/portfolio", contentHandler.ListPortfolio)
	r.GET("/portfolio/:slug", contentHandler.GetPortfolio)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens, userRepo))
	{
		authorized.GET("/me", userHandler.Me)

		// Project routes
		manageProjects := middleware.Require(access.ManageProjects)
		authorized.GET("/projects", projectHandler.List)
		authorized.POST("/projects", manageProjects, projectHandler.Create)
		authorized.GET("/projects/:id", projectHandler.Get)
		authorized.PUT("/projects/:id", manageProjects, projectHandler.Update)
		authorized.DELETE("/projects/:id", manageProjects, projectHandler.Delete)
		authorized.PUT("/projects/:id/staff", manageProjects, projectHandler.SetStaff)
		authorized.PUT("/projects/:id/contacts", manageProjects, projectHandler.SetContacts)
		authorized.GET("/projects/:id/payments/summary", projectHandler.PaymentSummary)
		authorized.GET("/projects/:id/payments/export", projectHandler.ExportPayments)
		authorized.GET("/clients/:id/contacts", manageProjects, contactHandler.List)
		authorized.POST("/clients/:id/contacts", manageProjects, contactHandler.Create)

		// Milestone routes
		authorized.GET("/milestones", milestoneHandler.List)
		authorized.POST("/milestones", milestoneHandler.Create)
		authorized.PUT("/milestones/reorder", milestoneHandler.Reorder)
		authorized.GET("/milestones/:id", milestoneHandler.Get)
		authorized.PUT("/milestones/:id", milestoneHandler.Update)
		authorized.DELETE("/milestones/:id", milestoneHandler.Delete)
		authorized.PUT("/milestones/:id/payment", milestoneHandler.SetPayment)
		authorized.GET("/projects/:id/milestones", milestoneHandler.ListForProject)
		authorized.POST("/projects/:id/milestones", milestoneHandler.CreateForProject)

		// Task routes
		authorized.GET("/projects/:id/milestones/:milestoneId/tasks", taskHandler.List)
		authorized.POST("/projects/:id/milestones/:milestoneId/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.Get)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.PUT("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.PUT("/tasks/:id/assign", taskHandler.Assign)

		// Comment routes
		authorized.GET("/projects/:id/comments", commentHandler.List)
		authorized.POST("/projects/:id/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.POST("/uploads", middleware.Require(access.UploadFiles), uploadHandler.Create)

		// Admin routes
		users := authorized.Group("/admin/users", middleware.Require(access.ManageUsers))
		users.GET("", adminUserHandler.List)
		users.POST("", adminUserHandler.Create)
		users.PUT("/:id/role", adminUserHandler.UpdateRole)
		users.PUT("/:id/manager", adminUserHandler.UpdateManager)

		adminBookings := authorized.Group("/admin/bookings", middleware.Require(access.ManageBookings))
		adminBookings.GET("", bookingHandler.List)
		adminBookings.PUT("/:id/status", bookingHandler.UpdateStatus)

		adminInquiries := authorized.Group("/admin/inquiries", middleware.Require(access.ManageInquiry))
		adminInquiries.GET("", inquiryHandler.List)
		adminInquiries.PUT("/:id/status", inquiryHandler.UpdateStatus)

		blog := authorized.Group("/admin/blog", middleware.Require(access.ManageContent))
		blog.GET("", contentHandler.AdminListPosts)
		blog.POST("", contentHandler.CreatePost)
		blog.PUT("/:id", contentHandler.UpdatePost)
		blog.DELETE("/:id", contentHandler.DeletePost)

		portfolio := authorized.Group("/admin/portfolio", middleware.Require(access.ManageContent))
		portfolio.GET("", contentHandler.AdminListPortfolio)
		portfolio.POST("", contentHandler.CreatePortfolio)
		portfolio.PUT("/:id", contentHandler.UpdatePortfolio)
		portfolio.DELETE("/:id", contentHandler.DeletePortfolio)
	}
	return r, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// readiness reports 503 until the database, and the cache when it is
// remote, answer.
func readiness(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, d.DB); err != nil {
			d.Log.Warn("readiness: database unavailable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "database"})
			return
		}
		if p, ok := d.Cache.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				d.Log.Warn("readiness: cache unavailable", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "cache"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Error("server forced to shutdown", zap.Error(err))
	}

	if s.redis != nil {
		_ = s.redis.Close()
	}
	if err := database.Close(s.DB); err != nil {
		s.Log.Warn("failed to close database", zap.Error(err))
	}
	_ = s.Log.Sync()
	s.Log.Info("server exited properly")
}
