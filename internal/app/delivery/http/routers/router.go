package routers

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	userController *controllers.UserController,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderContentType,
			constvars.HeaderXRequestID,
			constvars.HeaderAPIKey,
			constvars.HeaderPatientToken,
			constvars.HeaderDoctorToken,
		},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.LimitByIP())
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, middlewares, userController, appointmentController, paymentController)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, middlewares, doctorController, appointmentController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, paymentController)
			})

			r.Route("/admin", func(r chi.Router) {
				attachAdminRoutes(r, middlewares, adminController)
			})
		})
	})
}
