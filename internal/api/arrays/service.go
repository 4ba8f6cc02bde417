package arrays

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/assocarray/internal/api/schema"
	"github.com/skybi/assocarray/internal/config"
	"github.com/skybi/assocarray/internal/registry"
)

// Service represents the array API service
type Service struct {
	server *http.Server

	Config   *config.Config
	Registry *registry.Registry

	writer *schema.Writer
}

// Startup starts up the array API.
// It blocks until the server is shut down.
func (service *Service) Startup() error {
	server := &http.Server{
		Addr:              service.Config.ListenAddress,
		Handler:           service.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the array API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// Router creates the HTTP router serving all array API endpoints
func (service *Service) Router() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the array API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RedirectSlashes)
	router.Use(service.MiddlewareLogRequest)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the array controller endpoints
	router.Get("/v1/arrays", service.EndpointGetArrays)
	router.Post("/v1/arrays", service.EndpointCreateArray)
	router.Get("/v1/arrays/{name}", withMiddlewares(service.EndpointGetArray, service.MiddlewareFetchArray))
	router.Delete("/v1/arrays/{name}", service.EndpointDeleteArray)
	router.Post("/v1/arrays/{name}/clone", service.EndpointCloneArray)
	router.Get("/v1/arrays/{name}/debug", withMiddlewares(service.EndpointDebugArray, service.MiddlewareFetchArray))

	// Register the entry controller endpoints
	router.Put("/v1/arrays/{name}/entries/{key}", withMiddlewares(service.EndpointSetEntry, service.MiddlewareFetchArray))
	router.Get("/v1/arrays/{name}/entries/{key}", withMiddlewares(service.EndpointGetEntry, service.MiddlewareFetchArray))
	router.Head("/v1/arrays/{name}/entries/{key}", withMiddlewares(service.EndpointHasEntry, service.MiddlewareFetchArray))
	router.Delete("/v1/arrays/{name}/entries/{key}", withMiddlewares(service.EndpointRemoveEntry, service.MiddlewareFetchArray))

	// Register the snapshot controller endpoints
	router.Post("/v1/arrays/{name}/snapshots", service.EndpointCreateSnapshot)
	router.Get("/v1/arrays/{name}/snapshots", service.EndpointGetSnapshots)
	router.Delete("/v1/arrays/{name}/snapshots/{id}", service.EndpointDeleteSnapshot)
	router.Post("/v1/arrays/{name}/restore", service.EndpointRestoreSnapshot)

	return router
}

func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	final := end
	for i := len(middlewares); i > 0; i-- {
		final = middlewares[i-1](final)
	}
	return final
}
