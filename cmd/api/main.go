package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/config"
	appHTTP "github.com/timekeep/attendance-backend-go/internal/handler/http"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
	"github.com/timekeep/attendance-backend-go/internal/pkg/face"
	"github.com/timekeep/attendance-backend-go/internal/pkg/jwt"
	"github.com/timekeep/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/timekeep/attendance-backend-go/internal/service/attendance"
	authService "github.com/timekeep/attendance-backend-go/internal/service/auth"
	employeeService "github.com/timekeep/attendance-backend-go/internal/service/employee"
	"github.com/timekeep/attendance-backend-go/internal/service/master"
	reportService "github.com/timekeep/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	eventRepo := postgresql.NewEventRepository(db)
	changeLogRepo := postgresql.NewChangeLogRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewWorkLocationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	// Without an extractor the clock endpoints answer 503 for face checks;
	// everything else keeps working.
	var extractor face.Extractor
	if cfg.Face.Enabled() {
		extractor = face.NewHTTPExtractor(cfg.Face.ExtractorURL, cfg.Face.ModelName, cfg.Face.ExtractTimeout)
	} else {
		log.Println("No FACE_EXTRACTOR_URL configured; face verification disabled")
	}
	matcher := face.NewMatcher(cfg.Face.DistanceThreshold)

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		eventRepo,
		changeLogRepo,
		employeeRepo,
		locationRepo,
		extractor,
		matcher,
		loc,
	)
	reportSvc := reportService.NewReportService(eventRepo, employeeRepo, loc)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, extractor, cfg.App.DefaultPassword)
	masterSvc := master.NewMasterService(locationRepo, shiftRepo)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewMasterHandler(masterSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
