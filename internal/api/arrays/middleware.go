package arrays

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/skybi/assocarray/internal/api/schema"
	"github.com/skybi/assocarray/internal/registry"
)

type contextKey int

const contextValueArray contextKey = iota

// MiddlewareFetchArray resolves the '{name}' URL parameter and stores the array in the request context
func (service *Service) MiddlewareFetchArray(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		name := chi.URLParam(request, "name")
		arr, err := service.Registry.Array(name)
		if err != nil {
			if errors.Is(err, registry.ErrArrayNotFound) {
				service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrArrayNotFound(name))
				return
			}
			service.writer.WriteInternalError(writer, err)
			return
		}
		next(writer, request.WithContext(context.WithValue(request.Context(), contextValueArray, arr)))
	}
}

// MiddlewareLogRequest logs every request once it has been handled
func (service *Service) MiddlewareLogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(wrapped, request)
		log.Debug().
			Str("request_id", middleware.GetReqID(request.Context())).
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Int("status", wrapped.Status()).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

func arrayFromContext(request *http.Request) *registry.Array {
	return request.Context().Value(contextValueArray).(*registry.Array)
}
