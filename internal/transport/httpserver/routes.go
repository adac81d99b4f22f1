package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pawtrails/internal/config"
	"pawtrails/internal/transport/httpserver/handler"
	authmw "pawtrails/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api/v0", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)

		r.Route("/user", func(r chi.Router) {
			r.Get("/list", handlers.ListUsers)
			r.Get("/{uuid}", handlers.GetUser)
			r.Get("/{uuid}/followers", handlers.UserFollowers)
			r.Get("/{uuid}/following", handlers.UserFollowing)
			r.Get("/{uuid}/pets", handlers.UserPets)
			r.Get("/{uuid}/locations", handlers.UserLocations)
			r.Get("/{uuid}/favorites", handlers.UserFavorites)
			r.Get("/{uuid}/reviews", handlers.UserReviews)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)

				r.Get("/", handlers.Me)
				r.Patch("/", handlers.UpdateMe)
				r.Delete("/", handlers.DeleteMe)
				r.Get("/pets", handlers.MyPets)
				r.Get("/locations", handlers.MyLocations)
				r.Get("/favorites", handlers.MyFavorites)
				r.Get("/reviews", handlers.MyReviews)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireActive)

					r.Get("/dashboard", handlers.MyDashboard)
					r.Post("/follow", handlers.Follow)
					r.Delete("/follow", handlers.Unfollow)
					r.Get("/followers", handlers.MyFollowers)
					r.Get("/following", handlers.MyFollowing)
				})
			})
		})

		r.Route("/pet", func(r chi.Router) {
			r.Get("/", handlers.ListPets)
			r.Get("/{uuid}", handlers.GetPet)
			r.Get("/{uuid}/owner", handlers.PetOwners)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)
				r.Use(auth.RequireActive)

				r.Post("/", handlers.CreatePet)
				r.Patch("/{uuid}", handlers.UpdatePet)
				r.Delete("/{uuid}", handlers.DeletePet)
				r.Post("/{uuid}/owner", handlers.AddPetOwner)
				r.Delete("/{uuid}/owner", handlers.RemovePetOwner)
			})
		})

		r.Route("/location", func(r chi.Router) {
			r.Get("/", handlers.ListLocations)
			r.Get("/{uuid}", handlers.GetLocation)
			r.Get("/{uuid}/review", handlers.ListLocationReviews)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)

				// Search is authenticated: the created-by-me and
				// favorited-by-me filters scope to the caller.
				r.Post("/search", handlers.SearchLocations)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireActive)

					r.Post("/", handlers.CreateLocation)
					r.Patch("/{uuid}", handlers.UpdateLocation)
					r.Delete("/{uuid}", handlers.DeleteLocation)
					r.Post("/{uuid}/review", handlers.CreateLocationReview)
					r.Patch("/{uuid}/review/{review_uuid}", handlers.UpdateLocationReview)
					r.Delete("/{uuid}/review/{review_uuid}", handlers.DeleteLocationReview)
					r.Post("/{uuid}/favorite", handlers.FavoriteLocation)
					r.Delete("/{uuid}/favorite", handlers.UnfavoriteLocation)
					r.Post("/{uuid}/tag", handlers.TagLocation)
					r.Delete("/{uuid}/tag", handlers.UntagLocation)
				})
			})
		})

		r.Route("/tag", func(r chi.Router) {
			r.Get("/", handlers.ListTags)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)
				r.Use(auth.RequireActive)

				r.Post("/", handlers.CreateTag)
				r.Delete("/{uuid}", handlers.DeleteTag)
			})
		})
	})

	return r
}
