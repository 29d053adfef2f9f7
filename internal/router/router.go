package router

import (
	"net/http"

	"furniturehub/internal/handler"
	"furniturehub/internal/middleware"
	"furniturehub/internal/repository"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	wishlistHandler *handler.WishlistHandler,
	notificationHandler *handler.NotificationHandler,
	userHandler *handler.UserHandler,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public catalogue routes
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("GET /api/products/{id}/ratings", productHandler.ListRatings)
	mux.HandleFunc("GET /api/categories", categoryHandler.List)

	// Authenticated routes
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.Handle("POST /api/products/{id}/ratings", auth(productHandler.AddRating))

	mux.Handle("GET /api/cart", auth(cartHandler.Get))
	mux.Handle("POST /api/cart", auth(cartHandler.AddItem))
	mux.Handle("PUT /api/cart/{id}", auth(cartHandler.UpdateItem))
	mux.Handle("DELETE /api/cart/{id}", auth(cartHandler.RemoveItem))
	mux.Handle("DELETE /api/cart", auth(cartHandler.Clear))

	mux.Handle("POST /api/orders", auth(orderHandler.Place))
	mux.Handle("GET /api/orders/my", auth(orderHandler.ListMine))
	mux.Handle("GET /api/orders/{id}", auth(orderHandler.GetByID))
	mux.Handle("PUT /api/orders/{id}/cancel", auth(orderHandler.Cancel))

	mux.Handle("GET /api/wishlist", auth(wishlistHandler.List))
	mux.Handle("POST /api/wishlist", auth(wishlistHandler.Add))
	mux.Handle("DELETE /api/wishlist/{id}", auth(wishlistHandler.Remove))
	mux.Handle("DELETE /api/wishlist", auth(wishlistHandler.Clear))
	mux.Handle("POST /api/wishlist/{id}/move-to-cart", auth(wishlistHandler.MoveToCart))
	mux.Handle("GET /api/wishlist/check/{productId}", auth(wishlistHandler.Contains))

	mux.Handle("GET /api/notifications", auth(notificationHandler.List))
	mux.Handle("GET /api/notifications/unread-count", auth(notificationHandler.UnreadCount))
	mux.Handle("POST /api/notifications/{id}/read", auth(notificationHandler.MarkRead))
	mux.Handle("POST /api/notifications/read-all", auth(notificationHandler.MarkAllRead))

	mux.Handle("GET /api/users/me", auth(userHandler.Me))
	mux.Handle("PUT /api/users/me", auth(userHandler.UpdateProfile))
	mux.Handle("GET /api/users/me/order-history", auth(userHandler.OrderHistory))

	// Staff-only routes
	staff := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireStaff(h)
	}

	mux.Handle("POST /api/products", staff(productHandler.Create))
	mux.Handle("PUT /api/products/{id}", staff(productHandler.Update))
	mux.Handle("DELETE /api/products/{id}", staff(productHandler.Delete))
	mux.Handle("POST /api/categories", staff(categoryHandler.Create))
	mux.Handle("GET /api/orders", staff(orderHandler.List))
	mux.Handle("PUT /api/orders/{id}/status", staff(orderHandler.UpdateStatus))
	mux.Handle("GET /api/users", staff(userHandler.List))

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate
	var h http.Handler = mux
	h = middleware.Authenticate(userRepo, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
