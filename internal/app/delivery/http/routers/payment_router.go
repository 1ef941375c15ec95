package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// the IPN is authenticated by its signature, not by a session header
func attachPaymentRoutes(router chi.Router, paymentController *controllers.PaymentController) {
	router.Post("/momo/ipn", paymentController.MomoNotification)
}
