package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cliniqa/clinic-attendance/internal/audit"
	"github.com/cliniqa/clinic-attendance/internal/cache"
	"github.com/cliniqa/clinic-attendance/internal/config"
	"github.com/cliniqa/clinic-attendance/internal/handlers"
	infraRepo "github.com/cliniqa/clinic-attendance/internal/infra/repository"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	ucAttendance "github.com/cliniqa/clinic-attendance/internal/usecase/attendance"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokenCache *cache.TokenCache, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	attendanceRepo := infraRepo.NewAttendanceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ATTENDANCE
	// ======================================================
	verifyScanUC := ucAttendance.NewVerifyScan(
		attendanceRepo,
		auditDispatcher,
	)

	currentTokenUC := ucAttendance.NewCurrentToken(
		attendanceRepo,
		tokenCache,
	)

	issueTokenUC := ucAttendance.NewIssueToken(
		attendanceRepo,
		tokenCache,
		auditDispatcher,
	)

	listByDateUC := ucAttendance.NewListRecordsByDate(
		attendanceRepo,
	)

	listByMonthUC := ucAttendance.NewListRecordsByMonth(
		attendanceRepo,
	)

	manualEditUC := ucAttendance.NewManualEdit(
		attendanceRepo,
		auditDispatcher,
	)

	reconcileUC := ucAttendance.NewReconcileRecord(
		attendanceRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)
	clinicHoursHandler := handlers.NewClinicHoursHandler(db)
	employeeScheduleHandler := handlers.NewEmployeeScheduleHandler(db)

	attendanceHandler := handlers.NewAttendanceHandler(verifyScanUC)

	tokenHandler := handlers.NewTokenHandler(
		currentTokenUC,
		issueTokenUC,
	)

	recordsHandler := handlers.NewRecordsHandler(
		listByDateUC,
		listByMonthUC,
		manualEditUC,
		reconcileUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SCAN (any authenticated employee)
			// ------------------------------
			secured.POST("/attendance/scan", attendanceHandler.Scan)

			// ------------------------------
			// ADMIN SURFACE
			// ------------------------------
			admin := secured.Group("/me")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/clinic", clinicHandler.GetMeClinic)
				admin.PATCH("/clinic", clinicHandler.UpdateMeClinic)

				admin.GET("/clinic-hours", clinicHoursHandler.Get)
				admin.PUT("/clinic-hours", clinicHoursHandler.Update)

				admin.GET("/employees/:id/schedule", employeeScheduleHandler.Get)
				admin.PUT("/employees/:id/schedule", employeeScheduleHandler.Update)

				admin.GET("/qr-token", tokenHandler.GetCurrent)
				admin.POST("/qr-token", tokenHandler.Issue)

				// ------------------------------
				// ATTENDANCE RECORDS
				// ------------------------------
				admin.GET("/attendance", recordsHandler.ListByDate)
				admin.GET("/attendance/month", recordsHandler.ListByMonth)
				admin.PATCH("/attendance/:id", recordsHandler.ManualEdit)
				admin.POST("/attendance/:id/reconcile", recordsHandler.Reconcile)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
