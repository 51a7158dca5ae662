package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"spendbook-server/src/auth"
	"spendbook-server/src/handlers"
	"spendbook-server/src/middleware"
)

// Store is everything the routes need from persistence. *db.Store
// satisfies it; tests plug in fakes.
type Store interface {
	handlers.UserStore
	handlers.CategoryStore
	handlers.TransactionStore
}

func NewRouter(store Store, tm *auth.TokenManager, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Listing users requires a token like everything else; exposing
	// registered emails to anonymous callers is not an option.
	r.With(middleware.JWTAuthMiddleware(tm, store)).
		Get("/getAllUsers", handlers.GetAllUsers(store))

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register/", handlers.Register(store))
		r.Post("/users/login/", handlers.Login(store, tm))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(tm, store)).Group(func(r chi.Router) {
			// Categories
			r.Get("/categories/", handlers.ListCategories(store))
			r.Post("/categories/", handlers.CreateCategory(store))
			r.Get("/categories/{category_id}", handlers.GetCategory(store))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(store))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(store))

			// Transactions
			r.Get("/categories/{category_id}/transactions/", handlers.ListTransactions(store))
			r.Post("/categories/{category_id}/transactions/", handlers.CreateTransaction(store))
			r.Get("/categories/{category_id}/transactions/{transaction_id}", handlers.GetTransaction(store))
			r.Put("/categories/{category_id}/transactions/{transaction_id}", handlers.UpdateTransaction(store))
			r.Delete("/categories/{category_id}/transactions/{transaction_id}", handlers.DeleteTransaction(store))
		})
	})

	return r
}
