package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/config"
	"github.com/worklane-hq/hr-backoffice-go/internal/fixtures"
	appHTTP "github.com/worklane-hq/hr-backoffice-go/internal/handler/http"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/cron"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/email"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/jwt"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/sse"
	"github.com/worklane-hq/hr-backoffice-go/internal/repository/postgresql"
	approverService "github.com/worklane-hq/hr-backoffice-go/internal/service/approver"
	attendanceService "github.com/worklane-hq/hr-backoffice-go/internal/service/attendance"
	authService "github.com/worklane-hq/hr-backoffice-go/internal/service/auth"
	exitService "github.com/worklane-hq/hr-backoffice-go/internal/service/exit"
	leaveService "github.com/worklane-hq/hr-backoffice-go/internal/service/leave"
	notificationService "github.com/worklane-hq/hr-backoffice-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	editRequestRepo := postgresql.NewEditRequestRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)
	clearanceRepo := postgresql.NewClearanceRepository(db)
	settlementRepo := postgresql.NewSettlementRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	for _, leaveType := range fixtures.DefaultLeaveTypes() {
		if err := leaveTypeRepo.CreateIfAbsent(seedCtx, leaveType); err != nil {
			slog.Error("failed to seed leave type", "code", leaveType.Code, "error", err)
		}
	}
	cancelSeed()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()
	mailSender := email.NewSender(cfg.SMTP)

	notifier := notificationService.NewNotificationService(notificationRepo, userRepo, hub, mailSender)
	resolver := approverService.NewResolver(userRepo)

	auth := authService.NewAuthService(userRepo, jwtService)
	leaves := leaveService.NewLeaveService(
		leaveTypeRepo, balanceRepo, leaveRequestRepo, holidayRepo,
		employeeRepo, resolver, notifier, db, cfg.Workflow,
	)
	attendances := attendanceService.NewAttendanceService(
		attendanceRepo, editRequestRepo, employeeRepo, resolver, notifier, db,
	)
	exits := exitService.NewExitService(
		resignationRepo, clearanceRepo, settlementRepo, employeeRepo,
		resolver, notifier, db, cfg.Workflow,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, notifier, cfg.Workflow.AttendanceAutoCloseAt).
		RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(auth, jwtService),
		Leave:        appHTTP.NewLeaveHandler(leaves),
		Attendance:   appHTTP.NewAttendanceHandler(attendances),
		Exit:         appHTTP.NewExitHandler(exits),
		Holiday:      appHTTP.NewHolidayHandler(holidayRepo),
		Notification: appHTTP.NewNotificationHandler(notifier, jwtService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
