package main

import (
	"fmt"
	"net/http"

	"github.com/staffhive/hrms-backend-go/internal/config"
	appHTTP "github.com/staffhive/hrms-backend-go/internal/handler/http"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
	"github.com/staffhive/hrms-backend-go/internal/pkg/jwt"
	"github.com/staffhive/hrms-backend-go/internal/pkg/oauth"
	"github.com/staffhive/hrms-backend-go/internal/pkg/sse"
	"github.com/staffhive/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhive/hrms-backend-go/internal/service/attendance"
	authService "github.com/staffhive/hrms-backend-go/internal/service/auth"
	companyService "github.com/staffhive/hrms-backend-go/internal/service/company"
	employeeService "github.com/staffhive/hrms-backend-go/internal/service/employee"
	leaveService "github.com/staffhive/hrms-backend-go/internal/service/leave"
	notificationService "github.com/staffhive/hrms-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notificationSvc.Stop()

	authSvc := authService.NewAuthService(db, userRepo, refreshTokenRepo, employeeRepo, jwtService, googleService)
	companySvc := companyService.NewCompanyService(db, companyRepo, userRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, companyRepo, cfg.Attendance)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, employeeRepo, notificationSvc, cfg.Leave.DefaultAllotment)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     cfg.App.Version,
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		authHandler,
		companyHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
