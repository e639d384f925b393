package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/media"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/ratelimit"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
	ucClinic "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinic"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
	ucStaff "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// Deps são as dependências de infraestrutura montadas pelo main.
// Limiter e Logos são opcionais.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Limiter *ratelimit.Limiter
	Logos   media.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)
	patientRepo := infraRepo.NewPatientGormRepository(deps.DB)
	staffRepo := infraRepo.NewStaffGormRepository(deps.DB)
	clinicRepo := infraRepo.NewClinicGormRepository(deps.DB)

	auditLogger := audit.New(deps.DB)
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)

	var checkEmail ucStaff.EmailChecker
	if cfg.ValidateEmailDomain {
		checkEmail = validators.IsEmailDomainValid
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditLogger)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	appointmentUC := handlers.AppointmentUseCases{
		List:         ucAppointment.NewListAppointments(appointmentRepo),
		Get:          ucAppointment.NewGetAppointment(appointmentRepo),
		Create:       createAppointmentUC,
		Update:       ucAppointment.NewUpdateAppointment(appointmentRepo, auditLogger),
		ChangeStatus: ucAppointment.NewChangeStatus(appointmentRepo, auditLogger),
		Delete:       ucAppointment.NewDeleteAppointment(appointmentRepo, auditLogger),
		Availability: availabilityUC,
	}

	accounts := ucStaff.NewAccounts(clinicRepo, staffRepo, tokens, checkEmail, auditLogger)
	team := ucStaff.NewTeam(staffRepo, checkEmail, auditLogger)
	patients := ucPatient.NewDirectory(patientRepo, auditLogger)
	settings := ucClinic.NewSettings(clinicRepo, deps.Logos, auditLogger)

	clinicPageUC := booking.NewGetClinicPage(clinicRepo, staffRepo)
	publicAvailabilityUC := booking.NewGetPublicAvailability(clinicRepo, availabilityUC)
	bookUC := booking.NewBook(clinicRepo, appointmentRepo, patientRepo, createAppointmentUC)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accounts)
	meHandler := handlers.NewMeHandler(accounts)
	clinicHandler := handlers.NewClinicHandler(settings)
	usersHandler := handlers.NewUsersHandler(team)
	patientHandler := handlers.NewPatientHandler(patients)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	publicHandler := handlers.NewPublicHandler(clinicPageUC, publicAvailabilityUC, bookUC)

	publicLimit := ratelimit.Middleware(deps.Limiter, "public")
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	frontDesk := middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimit)
		{
			publicAPI.GET("/:slug", publicHandler.GetClinic)
			publicAPI.GET("/:slug/doctors/:doctorId/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", publicLimit, authHandler.Register)
		api.POST("/auth/login", publicLimit, authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/clinic", adminOnly, clinicHandler.UpdateMeClinic)
			secured.PUT("/clinic/logo", adminOnly, clinicHandler.UploadLogo)

			// ------------------------------
			// EQUIPE
			// ------------------------------
			secured.GET("/doctors", usersHandler.ListDoctors)
			secured.GET("/doctors/:id/availability", appointmentHandler.Availability)

			secured.GET("/users", usersHandler.List)
			secured.POST("/users", adminOnly, usersHandler.Create)
			secured.PATCH("/users/:id/status", adminOnly, usersHandler.UpdateStatus)
			secured.GET("/users/:id/working-hours", usersHandler.GetWorkingHours)
			secured.PUT("/users/:id/working-hours",
				middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor),
				usersHandler.UpdateWorkingHours,
			)

			// ------------------------------
			// PACIENTES
			// ------------------------------
			secured.GET("/patients", patientHandler.List)
			secured.GET("/patients/by-phone/:phone", patientHandler.FindByPhone)
			secured.GET("/patients/:id", patientHandler.Get)
			secured.POST("/patients", patientHandler.Create)
			secured.PATCH("/patients/:id", patientHandler.Update)
			secured.DELETE("/patients/:id", frontDesk, patientHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.DELETE("/appointments/:id", frontDesk, appointmentHandler.Delete)

			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
		}
	}
}
