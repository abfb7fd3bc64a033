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

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	adjustmentService "github.com/cmlabs-hris/attendance-backend-go/internal/service/adjustment"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	vacationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/vacation"
)

// stores groups the repositories of the selected driver.
type stores struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	adjustmentRepo adjustment.AdjustmentRepository
	employeeRepo   employee.EmployeeRepository
	vacationRepo   vacation.VacationRepository
	close          func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.MigrateSQLite(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
			}
		}
		return &stores{
			tx:             sqlite.NewTransactor(db),
			attendanceRepo: sqlite.NewAttendanceRepository(db),
			adjustmentRepo: sqlite.NewAdjustmentRepository(db),
			employeeRepo:   sqlite.NewEmployeeRepository(db),
			vacationRepo:   sqlite.NewVacationRepository(db),
			close:          func() { db.Close() },
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.MigratePostgres(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		return &stores{
			tx:             postgresql.NewTransactor(db),
			attendanceRepo: postgresql.NewAttendanceRepository(db),
			adjustmentRepo: postgresql.NewAdjustmentRepository(db),
			employeeRepo:   postgresql.NewEmployeeRepository(db),
			vacationRepo:   postgresql.NewVacationRepository(db),
			close:          db.Close,
		}, nil
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: appHTTP.LogFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	clock := timecalc.SystemClock{Location: loc}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(st.tx, st.attendanceRepo, st.employeeRepo, clock, loc)
	monthlySvc := attendanceService.NewMonthlySubmissionService(st.tx, st.attendanceRepo, st.employeeRepo, st.vacationRepo, clock, loc)
	adjustmentSvc := adjustmentService.NewAdjustmentService(st.tx, st.adjustmentRepo, st.attendanceRepo, st.employeeRepo, clock, loc)
	vacationSvc := vacationService.NewVacationService(st.tx, st.vacationRepo, st.employeeRepo, clock, loc)
	employeeSvc := employeeService.NewEmployeeService(st.employeeRepo, clock)
	reportSvc := reportService.NewReportService(st.attendanceRepo, st.employeeRepo, clock, loc)

	scheduler := cron.NewScheduler()
	if cfg.App.CronEnabled {
		cron.NewAttendanceJobs(reportSvc, clock, loc).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc, monthlySvc, clock, loc),
		appHTTP.NewMonthlySubmissionHandler(monthlySvc, loc),
		appHTTP.NewAdjustmentHandler(adjustmentSvc, loc),
		appHTTP.NewVacationHandler(vacationSvc, loc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewReportHandler(reportSvc, loc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
