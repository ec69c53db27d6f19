// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"hbnb/config"
	"hbnb/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	LocationHandler *handler.LocationHandler
	AmenityHandler  *handler.AmenityHandler
	UserHandler     *handler.UserHandler
	PlaceHandler    *handler.PlaceHandler
	ReviewHandler   *handler.ReviewHandler
	IndexHandler    *handler.IndexHandler
	Config          *config.Config
	Registry        *prometheus.Registry `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	locationHandler *handler.LocationHandler
	amenityHandler  *handler.AmenityHandler
	userHandler     *handler.UserHandler
	placeHandler    *handler.PlaceHandler
	reviewHandler   *handler.ReviewHandler
	indexHandler    *handler.IndexHandler
	config          *config.Config
	registry        *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		locationHandler: params.LocationHandler,
		amenityHandler:  params.AmenityHandler,
		userHandler:     params.UserHandler,
		placeHandler:    params.PlaceHandler,
		reviewHandler:   params.ReviewHandler,
		indexHandler:    params.IndexHandler,
		config:          params.Config,
		registry:        params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Filters page
	e.GET("/hbnb", r.indexHandler.FiltersPage)

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/status", r.indexHandler.Status)
	apiV1.GET("/stats", r.indexHandler.Stats)

	statesGroup := apiV1.Group("/states")
	{
		statesGroup.GET("", r.locationHandler.ListStates)
		statesGroup.POST("", r.locationHandler.CreateState)
		statesGroup.GET("/:state_id", r.locationHandler.GetState)
		statesGroup.PUT("/:state_id", r.locationHandler.UpdateState)
		statesGroup.DELETE("/:state_id", r.locationHandler.DeleteState)
		statesGroup.GET("/:state_id/cities", r.locationHandler.ListCities)
		statesGroup.POST("/:state_id/cities", r.locationHandler.CreateCity)
	}

	citiesGroup := apiV1.Group("/cities")
	{
		citiesGroup.GET("/:city_id", r.locationHandler.GetCity)
		citiesGroup.PUT("/:city_id", r.locationHandler.UpdateCity)
		citiesGroup.DELETE("/:city_id", r.locationHandler.DeleteCity)
		citiesGroup.GET("/:city_id/places", r.placeHandler.ListPlaces)
		citiesGroup.POST("/:city_id/places", r.placeHandler.CreatePlace)
	}

	amenitiesGroup := apiV1.Group("/amenities")
	{
		amenitiesGroup.GET("", r.amenityHandler.ListAmenities)
		amenitiesGroup.POST("", r.amenityHandler.CreateAmenity)
		amenitiesGroup.GET("/:amenity_id", r.amenityHandler.GetAmenity)
		amenitiesGroup.PUT("/:amenity_id", r.amenityHandler.UpdateAmenity)
		amenitiesGroup.DELETE("/:amenity_id", r.amenityHandler.DeleteAmenity)
	}

	usersGroup := apiV1.Group("/users")
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.POST("", r.userHandler.CreateUser)
		usersGroup.GET("/:user_id", r.userHandler.GetUser)
		usersGroup.PUT("/:user_id", r.userHandler.UpdateUser)
		usersGroup.DELETE("/:user_id", r.userHandler.DeleteUser)
	}

	placesGroup := apiV1.Group("/places")
	{
		placesGroup.GET("/:place_id", r.placeHandler.GetPlace)
		placesGroup.PUT("/:place_id", r.placeHandler.UpdatePlace)
		placesGroup.DELETE("/:place_id", r.placeHandler.DeletePlace)
		placesGroup.GET("/:place_id/amenities", r.placeHandler.ListPlaceAmenities)
		placesGroup.POST("/:place_id/amenities/:amenity_id", r.placeHandler.LinkAmenity)
		placesGroup.DELETE("/:place_id/amenities/:amenity_id", r.placeHandler.UnlinkAmenity)
		placesGroup.GET("/:place_id/reviews", r.reviewHandler.ListReviews)
		placesGroup.POST("/:place_id/reviews", r.reviewHandler.CreateReview)
	}
	apiV1.POST("/places_search", r.placeHandler.SearchPlaces)

	reviewsGroup := apiV1.Group("/reviews")
	{
		reviewsGroup.GET("/:review_id", r.reviewHandler.GetReview)
		reviewsGroup.PUT("/:review_id", r.reviewHandler.UpdateReview)
		reviewsGroup.DELETE("/:review_id", r.reviewHandler.DeleteReview)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.registry == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})))
}
