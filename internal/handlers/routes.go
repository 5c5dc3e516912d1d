package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/session"
)

// RegisterRoutes mounts every endpoint on r. SessionMiddleware must already
// be installed on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)
	r.GET("/", h.Home)

	auth := r.Group("/auth")
	{
		auth.POST("/login/:role", h.Login)
		auth.POST("/signup/:role", h.Signup)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.CurrentSession)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(h.Log))
	{
		api.GET("/navigation", h.Navigation)

		settings := api.Group("/settings")
		{
			settings.GET("/profile", h.GetProfile)
			settings.PUT("/profile", h.UpdateProfile)
			settings.PATCH("/notifications", h.UpdateNotificationSettings)
			settings.DELETE("/account", h.DeleteAccount)
		}

		patient := api.Group("/patient")
		patient.Use(middleware.RequireRole(session.RolePatient, h.Log))
		{
			patient.GET("/dashboard", h.PatientDashboard)
			patient.GET("/doctors", h.FindDoctors)
			patient.POST("/appointments", h.BookAppointment)
			patient.GET("/appointments", h.PatientAppointments)
			patient.POST("/appointments/:id/cancel", h.CancelAppointment)
			patient.POST("/appointments/:id/reschedule", h.RescheduleAppointment)
			patient.GET("/appointments/:id/notes", h.AppointmentNotes)
			patient.GET("/waitlist", h.ListWaitlist)
			patient.POST("/waitlist", h.JoinWaitlist)
			patient.DELETE("/waitlist/:id", h.LeaveWaitlist)
			patient.POST("/waitlist/:id/emergency", h.RequestEmergency)
			patient.GET("/medical-history", h.MedicalHistory)
			patient.GET("/medical-history/:id", h.MedicalNote)
		}

		doctor := api.Group("/doctor")
		doctor.Use(middleware.RequireRole(session.RoleDoctor, h.Log))
		{
			doctor.GET("/dashboard", h.DoctorDashboard)
			doctor.GET("/appointments", h.DoctorAppointments)
			doctor.POST("/appointments/:id/notes", h.AddAppointmentNotes)
			doctor.POST("/appointments/:id/cancel", h.CancelAppointment)
			doctor.GET("/patients", h.ListPatients)
			doctor.POST("/patients/:id/notes", h.AddPatientNote)
			doctor.GET("/schedule", h.GetSchedule)
			doctor.POST("/schedule/blocks", h.BlockTime)
			doctor.POST("/schedule/:id/approve", h.ApproveSlot)
			doctor.POST("/schedule/:id/cancel", h.CancelSlot)
			doctor.POST("/schedule/:id/reschedule", h.RescheduleSlot)
			doctor.POST("/emergencies/:id/approve", h.ApproveEmergency)
			doctor.POST("/emergencies/:id/reject", h.RejectEmergency)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(session.RoleAdmin, h.Log))
		{
			admin.GET("/dashboard", h.AdminDashboard)

			admin.GET("/users", h.ListUsers)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.PATCH("/users/:id/status", h.SetUserStatus)
			admin.DELETE("/users/:id", h.DeleteUser)

			admin.GET("/doctors", h.ListDoctors)
			admin.POST("/doctors", h.CreateDoctor)
			admin.PUT("/doctors/:id", h.UpdateDoctor)
			admin.PATCH("/doctors/:id/status", h.SetDoctorStatus)
			admin.DELETE("/doctors/:id", h.DeleteDoctor)
			admin.GET("/specialties", h.ListSpecialties)

			admin.GET("/analytics", h.Analytics)
			admin.GET("/analytics/export", h.ExportAnalytics)
		}
	}
}
