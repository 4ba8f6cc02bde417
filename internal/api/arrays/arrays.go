package arrays

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skybi/assocarray/internal/api/schema"
	"github.com/skybi/assocarray/internal/api/validation"
	"github.com/skybi/assocarray/internal/registry"
)

// ArrayInfo represents the summary of an array returned by the API
type ArrayInfo struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
}

// ArrayDetails represents an array including its entries in physical slot order
type ArrayDetails struct {
	ArrayInfo
	Entries []Entry `json:"entries"`
}

// Entry represents a single key-value pair returned by the API
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type createArrayBody struct {
	Name     *string `json:"name" required:"true"`
	Capacity int     `json:"capacity" min:"0" max:"1048576"`
}

type cloneArrayBody struct {
	Target string `json:"target"`
}

// EndpointGetArrays handles the 'GET /v1/arrays?offset={number?:0}&limit={number?:10}' endpoint
func (service *Service) EndpointGetArrays(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	offset, validationErr := validation.QueryNumber(request, "offset", false, 0, 0, math.MaxInt64)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	limit, validationErr := validation.QueryNumber(request, "limit", false, 10, 1, 100)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	infos := []*ArrayInfo{}
	for _, name := range service.Registry.Names() {
		arr, err := service.Registry.Array(name)
		if err != nil {
			// dropped since Names was called
			continue
		}
		infos = append(infos, &ArrayInfo{Name: name, Size: arr.Size(), Capacity: arr.Capacity()})
	}

	service.writer.WriteJSON(writer, schema.Paginate(uint64(offset), uint64(limit), infos))
}

// EndpointCreateArray handles the 'POST /v1/arrays' endpoint
func (service *Service) EndpointCreateArray(writer http.ResponseWriter, request *http.Request) {
	body, validationErrs, err := schema.UnmarshalBody[createArrayBody](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	arr, err := service.Registry.Create(*body.Name, body.Capacity)
	if err != nil {
		service.writeRegistryError(writer, *body.Name, err)
		return
	}

	service.writer.WriteJSONCode(writer, http.StatusCreated, &ArrayInfo{
		Name:     *body.Name,
		Size:     arr.Size(),
		Capacity: arr.Capacity(),
	})
}

// EndpointGetArray handles the 'GET /v1/arrays/{name}' endpoint
func (service *Service) EndpointGetArray(writer http.ResponseWriter, request *http.Request) {
	arr := arrayFromContext(request)

	details := &ArrayDetails{
		ArrayInfo: ArrayInfo{Name: chi.URLParam(request, "name")},
		Entries:   []Entry{},
	}
	arr.Range(func(key, value string) bool {
		details.Entries = append(details.Entries, Entry{Key: key, Value: value})
		return true
	})
	details.Size = len(details.Entries)
	details.Capacity = arr.Capacity()

	service.writer.WriteJSON(writer, details)
}

// EndpointDeleteArray handles the 'DELETE /v1/arrays/{name}' endpoint
func (service *Service) EndpointDeleteArray(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")
	if err := service.Registry.Drop(name); err != nil {
		service.writeRegistryError(writer, name, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointCloneArray handles the 'POST /v1/arrays/{name}/clone' endpoint.
// The optional body field 'target' names the clone; a random name is generated if it is missing.
func (service *Service) EndpointCloneArray(writer http.ResponseWriter, request *http.Request) {
	source := chi.URLParam(request, "name")

	body, validationErrs, err := schema.UnmarshalBody[cloneArrayBody](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	target, err := service.Registry.Clone(source, body.Target)
	if err != nil {
		if errors.Is(err, registry.ErrArrayNotFound) {
			service.writeRegistryError(writer, source, err)
			return
		}
		service.writeRegistryError(writer, body.Target, err)
		return
	}

	arr, err := service.Registry.Array(target)
	if err != nil {
		service.writeRegistryError(writer, target, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, &ArrayInfo{
		Name:     target,
		Size:     arr.Size(),
		Capacity: arr.Capacity(),
	})
}

// EndpointDebugArray handles the 'GET /v1/arrays/{name}/debug' endpoint.
// The plain text slot listing it returns is meant for humans only.
func (service *Service) EndpointDebugArray(writer http.ResponseWriter, request *http.Request) {
	service.writer.WriteText(writer, arrayFromContext(request).String())
}

func (service *Service) writeRegistryError(writer http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, registry.ErrArrayNotFound):
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrArrayNotFound(name))
	case errors.Is(err, registry.ErrArrayExists):
		service.writer.WriteErrors(writer, http.StatusConflict, schema.ErrArrayExists(name))
	case errors.Is(err, registry.ErrInvalidName):
		service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrArrayNameInvalid(name))
	default:
		service.writer.WriteInternalError(writer, err)
	}
}
