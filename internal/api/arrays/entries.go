package arrays

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skybi/assocarray/internal/api/schema"
	"github.com/skybi/assocarray/internal/assocarray"
)

type setEntryBody struct {
	Value *string `json:"value" required:"true"`
}

// EndpointSetEntry handles the 'PUT /v1/arrays/{name}/entries/{key}' endpoint.
// It responds with 201 Created if the key was new and 200 OK if an existing value was replaced.
func (service *Service) EndpointSetEntry(writer http.ResponseWriter, request *http.Request) {
	arr := arrayFromContext(request)
	key := chi.URLParam(request, "key")

	body, validationErrs, err := schema.UnmarshalBody[setEntryBody](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	created := false
	arr.BootstrappedManipulation(func(underlying *assocarray.SlotArray[string, string]) {
		created = !underlying.Has(key)
		underlying.Set(key, *body.Value)
	})

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	service.writer.WriteJSONCode(writer, code, &Entry{Key: key, Value: *body.Value})
}

// EndpointGetEntry handles the 'GET /v1/arrays/{name}/entries/{key}' endpoint
func (service *Service) EndpointGetEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")

	value, err := arrayFromContext(request).Get(key)
	if err != nil {
		service.writeEntryError(writer, request, key, err)
		return
	}
	service.writer.WriteJSON(writer, &Entry{Key: key, Value: value})
}

// EndpointHasEntry handles the 'HEAD /v1/arrays/{name}/entries/{key}' endpoint.
// It responds with 204 No Content if the key is present and 404 Not Found otherwise.
func (service *Service) EndpointHasEntry(writer http.ResponseWriter, request *http.Request) {
	if arrayFromContext(request).Has(chi.URLParam(request, "key")) {
		writer.WriteHeader(http.StatusNoContent)
		return
	}
	writer.WriteHeader(http.StatusNotFound)
}

// EndpointRemoveEntry handles the 'DELETE /v1/arrays/{name}/entries/{key}' endpoint
func (service *Service) EndpointRemoveEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")

	if err := arrayFromContext(request).Remove(key); err != nil {
		service.writeEntryError(writer, request, key, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

func (service *Service) writeEntryError(writer http.ResponseWriter, request *http.Request, key string, err error) {
	if errors.Is(err, assocarray.ErrKeyNotFound) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrKeyNotFound(chi.URLParam(request, "name"), key))
		return
	}
	service.writer.WriteInternalError(writer, err)
}
