package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vino121095/valenmart-storefront/internal/pkg/telemetry"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/httpx/middlewares"
)

// NewRouter wires the gateway API. metrics may be nil.
func NewRouter(handler *Handler, metrics *telemetry.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middlewares.AttachSession)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if metrics != nil {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/healthz", Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", handler.Products)
		r.Get("/categories", handler.Categories)
		r.Post("/forgot-password", handler.ForgotPassword)

		r.Route("/customers/{customerId}", func(r chi.Router) {
			r.Get("/dashboard", handler.Dashboard)
			r.Get("/invoices", handler.Invoices)
			r.Get("/notifications", handler.Notifications)
			r.Put("/notifications/mark-read", handler.MarkNotificationsRead)
			r.Get("/notifications/stream", handler.NotificationStream)
			r.Get("/cart", handler.Cart)
			r.Post("/cart", handler.AddToCart)
			r.Delete("/cart/{cartId}", handler.RemoveFromCart)
			r.Get("/profile", handler.Profile)
		})

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Get("/invoice", handler.Invoice)
			r.Get("/invoice.pdf", handler.InvoicePDF)
			r.Get("/status", handler.OrderStatus)
			r.Get("/status/history", handler.StatusHistory)
			r.Post("/deliver", handler.MarkDelivered)
		})
	})

	return otelhttp.NewHandler(r, "storefront-gateway")
}
