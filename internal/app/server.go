// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"crm-service/internal/config"
	"crm-service/internal/db"
	adminHandler "crm-service/internal/handlers/admin"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	employeeHandler "crm-service/internal/handlers/employee"
	leadHandler "crm-service/internal/handlers/lead"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	"crm-service/internal/repository/mongodb"
	"crm-service/internal/scheduler"
	assignmentUsecase "crm-service/internal/service/assignment"
	attendanceUsecase "crm-service/internal/service/attendance"
	authUsecase "crm-service/internal/service/auth"
	dashboardUsecase "crm-service/internal/service/dashboard"
	employeeUsecase "crm-service/internal/service/employee"
	leadUsecase "crm-service/internal/service/lead"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg       config.AppConfig
	engine    *gin.Engine
	logger    *zap.Logger
	scheduler *scheduler.Scheduler
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- MongoDB -----
	mongoClient, err := db.ConnectMongo(s.cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	database := mongoClient.Database(s.cfg.MongoDB)

	// ----- Redis -----
	redisCfg := db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	}
	redisClient, err := db.NewRedisClient(redisCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Day boundary timezone -----
	loc, err := time.LoadLocation(s.cfg.TimeZone)
	if err != nil {
		logger.Warn("invalid TIME_ZONE, falling back to local", zap.String("tz", s.cfg.TimeZone))
		loc = time.Local
	}

	// ----- JWT & Sessions -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}
	sessionManager := session.NewManager(redisClient)

	// ----- Repositories -----
	employeeRepo := mongodb.NewEmployeeRepository(database)
	leadRepo := mongodb.NewLeadRepository(database)
	adminRepo := mongodb.NewAdminRepository(database)

	// ----- Services -----
	authService := authUsecase.NewAuthService(adminRepo, employeeRepo, jwtManager, sessionManager, logger)
	employeeService := employeeUsecase.NewService(employeeRepo, logger)
	attendanceService := attendanceUsecase.NewService(employeeRepo, logger, loc)
	assignmentService := assignmentUsecase.NewService(leadRepo, employeeRepo, logger)
	leadService := leadUsecase.NewService(leadRepo, employeeRepo, logger)
	dashboardService := dashboardUsecase.NewService(leadRepo, employeeRepo, logger)

	// ----- Seed Admin -----
	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := authService.EnsureAdminExists(seedCtx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminFirstName, s.cfg.AdminLastName); err != nil {
		logger.Error("failed to ensure admin exists", zap.Error(err))
	}

	// ----- Midnight Attendance Reset -----
	s.scheduler = scheduler.New(employeeRepo, logger, loc)
	s.scheduler.Start()

	// ----- Handlers -----
	adminHandlerInst := adminHandler.NewAdminHandler(authService, employeeService)
	employeeHandlerInst := employeeHandler.NewEmployeeHandler(authService, employeeService, attendanceService)
	leadHandlerInst := leadHandler.NewLeadHandler(assignmentService, leadService)
	dashboardHandlerInst := dashboardHandler.NewDashboardHandler(dashboardService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)
	attendanceMiddleware := middleware.NewAttendanceMiddleware(employeeRepo)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AdminHandler:         adminHandlerInst,
		EmployeeHandler:      employeeHandlerInst,
		LeadHandler:          leadHandlerInst,
		DashboardHandler:     dashboardHandlerInst,
		AuthMiddleware:       authMiddleware,
		AttendanceMiddleware: attendanceMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the background scheduler. The HTTP listener exits with
// the process.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}
