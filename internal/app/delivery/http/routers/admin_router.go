package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController) {
	router.Use(middlewares.RequireAdminAPIKey)

	router.Post("/doctors", adminController.AddDoctor)
	router.Post("/doctors/availability", adminController.ChangeAvailability)
}
