package routes

import (
	"log/slog"

	"github.com/gorilla/mux"

	"property-listing-service/controllers"
	"property-listing-service/middleware"
	"property-listing-service/services"
	"property-listing-service/utils"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Log             *slog.Logger
	Tokens          *utils.JWTManager
	Auth            *services.AuthService
	Properties      *services.PropertyService
	Favourites      *services.FavouriteService
	Recommendations *services.RecommendationService
}

func Routes(router *mux.Router, d Deps) {
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/register", controllers.RegisterUser(d.Auth, d.Log)).Methods("POST")
	api.HandleFunc("/auth/login", controllers.LoginUser(d.Auth, d.Log)).Methods("POST")

	// Public property reads
	api.HandleFunc("/properties", controllers.GetProperties(d.Properties, d.Log)).Methods("GET")
	api.HandleFunc("/properties/search", controllers.SearchProperties(d.Properties, d.Log)).Methods("GET")
	api.HandleFunc("/properties/{id}", controllers.GetProperty(d.Properties, d.Log)).Methods("GET")

	// Routes that require authentication
	authenticated := api.NewRoute().Subrouter()
	authenticated.Use(middleware.Auth(d.Tokens, d.Log))

	authenticated.HandleFunc("/properties", controllers.CreateProperty(d.Properties, d.Log)).Methods("POST")
	authenticated.HandleFunc("/properties/{id}", controllers.UpdateProperty(d.Properties, d.Log)).Methods("PUT")
	authenticated.HandleFunc("/properties/{id}", controllers.DeleteProperty(d.Properties, d.Log)).Methods("DELETE")

	authenticated.HandleFunc("/favorites", controllers.AddFavourite(d.Favourites, d.Log)).Methods("POST")
	authenticated.HandleFunc("/favorites", controllers.GetFavourites(d.Favourites, d.Log)).Methods("GET")
	authenticated.HandleFunc("/favorites/{propertyId}", controllers.DeleteFavourite(d.Favourites, d.Log)).Methods("DELETE")

	authenticated.HandleFunc("/recommendations", controllers.RecommendProperty(d.Recommendations, d.Log)).Methods("POST")
	authenticated.HandleFunc("/recommendations", controllers.GetRecommendations(d.Recommendations, d.Log)).Methods("GET")
}
