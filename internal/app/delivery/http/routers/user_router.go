package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	userController *controllers.UserController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
) {
	router.Post("/register", userController.Register)
	router.Post("/login", userController.Login)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.AuthenticatePatient)

		r.Get("/appointments", appointmentController.ListUserAppointments)
		r.With(middlewares.LimitBookingAttempts).Post("/appointments/book", appointmentController.BookAppointment)
		r.Post("/appointments/cancel", appointmentController.CancelAppointment)

		r.Post("/payments/momo", paymentController.InitiateMomoPayment)
		r.Post("/payments/confirm", paymentController.ConfirmPayment)
	})
}
