package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
) {
	router.Get("/", doctorController.ListDoctors)
	router.Post("/login", doctorController.Login)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.AuthenticateDoctor)

		r.Get("/appointments", appointmentController.ListDoctorAppointments)
		r.Post("/appointments/complete", appointmentController.CompleteAppointment)
		r.Post("/appointments/cancel", appointmentController.DoctorCancelAppointment)
		r.Get("/dashboard", doctorController.Dashboard)
		r.Post("/availability", doctorController.ChangeOwnAvailability)
	})
}
