// Package app wires configuration into stores, services and handlers. The API
// server and the ops CLI share it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/securefront/workforce-backend-go/internal/config"
	"github.com/securefront/workforce-backend-go/internal/domain/agency"
	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/dashboard"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	appHTTP "github.com/securefront/workforce-backend-go/internal/handler/http"
	"github.com/securefront/workforce-backend-go/internal/pkg/database"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/jwt"
	"github.com/securefront/workforce-backend-go/internal/pkg/lock"
	"github.com/securefront/workforce-backend-go/internal/repository/document"
	"github.com/securefront/workforce-backend-go/internal/repository/mongodb"
	"github.com/securefront/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/securefront/workforce-backend-go/internal/service/attendance"
	dashboardService "github.com/securefront/workforce-backend-go/internal/service/dashboard"
	notificationService "github.com/securefront/workforce-backend-go/internal/service/notification"
	reportService "github.com/securefront/workforce-backend-go/internal/service/report"
	shiftService "github.com/securefront/workforce-backend-go/internal/service/shift"
	siteService "github.com/securefront/workforce-backend-go/internal/service/site"
)

type App struct {
	Config *config.Config
	Store  docstore.Store

	JWT          jwt.Service
	Agencies     agency.AgencyRepository
	Attendance   attendance.AttendanceService
	Shifts       shift.ShiftService
	Sites        site.SiteService
	Reports      report.ReportService
	Dashboard    dashboard.DashboardService
	Notification notification.Service

	closers []func()
}

// New connects the configured backends and builds every service. Close
// releases them in reverse order.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt service: %w", err)
	}
	a.JWT = jwtService

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	var (
		locker lock.Locker = lock.NewKeyedMutex()
		cache  site.BoundaryCache
	)
	if cfg.Redis.Addr != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.onClose(func() { _ = client.Close() })
		locker = lock.NewRedisLocker(client, "securefront:lock:", cfg.Redis.LockTTL, cfg.Redis.LockRetry)
		cache = siteService.NewRedisBoundaryCache(client, cfg.Redis.BoundaryTTL)
		slog.Info("Using redis for locks and boundary cache", "addr", cfg.Redis.Addr)
	}

	publisher, err := a.openPublisher()
	if err != nil {
		a.Close()
		return nil, err
	}

	attendanceRepo := document.NewAttendanceRepository(a.Store)
	shiftRepo := document.NewShiftRepository(a.Store)
	siteRepo := document.NewSiteRepository(a.Store)
	employeeRepo := document.NewEmployeeRepository(a.Store)
	hourlyReportRepo := document.NewHourlyReportRepository(a.Store)
	notificationRepo := document.NewNotificationRepository(a.Store)
	a.Agencies = document.NewAgencyRepository(a.Store)

	a.Notification = notificationService.NewNotificationService(notificationRepo, publisher, notificationService.Config{})
	a.onClose(a.Notification.Stop)

	a.Sites = siteService.NewSiteService(siteRepo, cache)
	a.Shifts = shiftService.NewShiftService(shiftRepo, employeeRepo, siteRepo, locker,
		shiftService.WithNotifications(a.Notification),
	)
	a.Attendance = attendanceService.NewAttendanceService(
		attendanceRepo, siteRepo, shiftRepo, shiftService.NewMatcher(shiftRepo), locker,
		attendanceService.WithNotifications(a.Notification),
		attendanceService.WithSweepTimeout(cfg.Report.SweepTimeout),
	)
	a.Reports = reportService.NewReportService(attendanceRepo, shiftRepo, employeeRepo, siteRepo, hourlyReportRepo,
		reportService.WithTimeout(cfg.Report.Timeout),
	)
	a.Dashboard = dashboardService.NewDashboardService(employeeRepo, siteRepo, attendanceRepo, hourlyReportRepo)

	return a, nil
}

// Handlers builds the HTTP handlers over the app's services.
func (a *App) Handlers() appHTTP.Handlers {
	return appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(a.Attendance),
		Shift:      appHTTP.NewShiftHandler(a.Shifts),
		Site:       appHTTP.NewSiteHandler(a.Sites),
		Report:     appHTTP.NewReportHandler(a.Reports),
		Dashboard:  appHTTP.NewDashboardHandler(a.Dashboard),
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.onClose(db.Close)
		store := postgresql.NewDocumentStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare document schema: %w", err)
		}
		a.Store = store
	case config.StoreMongo:
		client, err := database.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		a.onClose(func() { _ = client.Disconnect(context.Background()) })
		a.Store = mongodb.NewDocumentStore(client, cfg.Mongo.Database)
	default:
		slog.Warn("Using in-memory document store; data is lost on restart")
		a.Store = docstore.NewMemory()
	}
	slog.Info("Document store ready", "driver", cfg.Store.Driver)
	return nil
}

func (a *App) openPublisher() (notification.Publisher, error) {
	if a.Config.NATS.URL == "" {
		return notificationService.NewLogPublisher(), nil
	}
	conn, err := nats.Connect(a.Config.NATS.URL, nats.Name(a.Config.App.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	a.onClose(func() {
		if err := conn.Drain(); err != nil {
			conn.Close()
		}
	})
	return notificationService.NewNATSPublisher(conn), nil
}
