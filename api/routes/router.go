package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marocvoyages/marocvoyages-backend/api/controllers"
	"github.com/marocvoyages/marocvoyages-backend/api/middleware"
	authsvc "github.com/marocvoyages/marocvoyages-backend/internal/auth"
	blogsvc "github.com/marocvoyages/marocvoyages-backend/internal/blog"
	bookingsvc "github.com/marocvoyages/marocvoyages-backend/internal/bookings"
	cartsvc "github.com/marocvoyages/marocvoyages-backend/internal/cart"
	categorysvc "github.com/marocvoyages/marocvoyages-backend/internal/categories"
	checkoutsvc "github.com/marocvoyages/marocvoyages-backend/internal/checkout"
	requestsvc "github.com/marocvoyages/marocvoyages-backend/internal/customrequests"
	newslettersvc "github.com/marocvoyages/marocvoyages-backend/internal/newsletter"
	ordersvc "github.com/marocvoyages/marocvoyages-backend/internal/orders"
	productsvc "github.com/marocvoyages/marocvoyages-backend/internal/products"
	statsvc "github.com/marocvoyages/marocvoyages-backend/internal/stats"
	testimonialsvc "github.com/marocvoyages/marocvoyages-backend/internal/testimonials"
	toursvc "github.com/marocvoyages/marocvoyages-backend/internal/tours"
	"github.com/marocvoyages/marocvoyages-backend/pkg/auth/session"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
	"github.com/marocvoyages/marocvoyages-backend/pkg/metrics"
	"github.com/marocvoyages/marocvoyages-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Passing a struct keeps the
// constructor signature stable as endpoints accrue.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB    controllers.Pinger
	Redis *redis.Client

	Sessions session.AccessSessionChecker

	Auth           authsvc.Service
	Tours          toursvc.Service
	Products       productsvc.Service
	Categories     categorysvc.Service
	Blog           blogsvc.Service
	Testimonials   testimonialsvc.Service
	Newsletter     newslettersvc.Service
	Bookings       bookingsvc.Service
	CustomRequests requestsvc.Service
	Orders         ordersvc.Service
	Cart           cartsvc.Service
	Checkout       checkoutsvc.Service
	Stats          statsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(cfg.RateLimit, deps.Redis, logg)).
				Post("/login", controllers.Login(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
				r.Post("/logout", controllers.Logout(deps.Auth, logg))
				r.Get("/session", controllers.Session(deps.Auth, logg))
			})
		})

		r.Get("/tours", controllers.ListTours(deps.Tours, logg))
		r.Get("/tours/{id}", controllers.GetTour(deps.Tours, logg))
		r.Get("/products", controllers.ListProducts(deps.Products, logg))
		r.Get("/products/{id}", controllers.GetProduct(deps.Products, logg))
		r.Get("/categories", controllers.ListCategories(deps.Categories, logg))
		r.Get("/categories/{id}", controllers.GetCategory(deps.Categories, logg))
		r.Get("/blog", controllers.ListBlogPosts(deps.Blog, logg))
		r.Get("/blog/{id}", controllers.GetBlogPost(deps.Blog, logg))
		r.Get("/testimonials", controllers.ListTestimonials(deps.Testimonials, logg))
		r.Post("/testimonials", controllers.CreateTestimonial(deps.Testimonials, logg))
		r.Post("/newsletter", controllers.SubscribeNewsletter(deps.Newsletter, logg))
		r.Post("/bookings", controllers.CreateBooking(deps.Bookings, logg))
		r.Post("/custom-requests", controllers.CreateCustomRequest(deps.CustomRequests, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Delete("/", controllers.ClearCart(deps.Cart, logg))
				r.Post("/items", controllers.AddCartItem(deps.Cart, deps.Products, logg))
				r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
			})

			r.Get("/checkout", controllers.GetCheckout(deps.Checkout, logg))
			r.Post("/orders", controllers.SubmitOrder(deps.Checkout, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireAdmin(logg))

			r.Get("/stats", controllers.AdminDashboard(deps.Stats, logg))

			r.Post("/tours", controllers.AdminCreateTour(deps.Tours, logg))
			r.Put("/tours/{id}", controllers.AdminUpdateTour(deps.Tours, logg))
			r.Delete("/tours/{id}", controllers.AdminDeleteTour(deps.Tours, logg))

			r.Post("/products", controllers.AdminCreateProduct(deps.Products, logg))
			r.Put("/products/{id}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/products/{id}", controllers.AdminDeleteProduct(deps.Products, logg))

			r.Post("/categories", controllers.AdminCreateCategory(deps.Categories, logg))
			r.Put("/categories/{id}", controllers.AdminUpdateCategory(deps.Categories, logg))
			r.Delete("/categories/{id}", controllers.AdminDeleteCategory(deps.Categories, logg))

			r.Post("/blog", controllers.AdminCreateBlogPost(deps.Blog, logg))
			r.Put("/blog/{id}", controllers.AdminUpdateBlogPost(deps.Blog, logg))
			r.Delete("/blog/{id}", controllers.AdminDeleteBlogPost(deps.Blog, logg))

			r.Get("/orders", controllers.AdminListOrders(deps.Orders, logg))
			r.Get("/orders/{id}", controllers.AdminGetOrder(deps.Orders, logg))
			r.Put("/orders/{id}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))

			r.Get("/bookings", controllers.AdminListBookings(deps.Bookings, logg))
			r.Get("/bookings/{id}", controllers.AdminGetBooking(deps.Bookings, logg))
			r.Put("/bookings/{id}/status", controllers.AdminUpdateBookingStatus(deps.Bookings, logg))

			r.Get("/custom-requests", controllers.AdminListCustomRequests(deps.CustomRequests, logg))
			r.Get("/custom-requests/{id}", controllers.AdminGetCustomRequest(deps.CustomRequests, logg))
			r.Put("/custom-requests/{id}/status", controllers.AdminUpdateCustomRequestStatus(deps.CustomRequests, logg))

			r.Get("/newsletter", controllers.AdminListNewsletter(deps.Newsletter, logg))
		})
	})

	return r
}
