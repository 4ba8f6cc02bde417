package arrays

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skybi/assocarray/internal/api/schema"
	"github.com/skybi/assocarray/internal/api/validation"
	"github.com/skybi/assocarray/internal/registry"
)

// EndpointCreateSnapshot handles the 'POST /v1/arrays/{name}/snapshots' endpoint
func (service *Service) EndpointCreateSnapshot(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")

	snap, err := service.Registry.Snapshot(request.Context(), name)
	if err != nil {
		service.writeRegistryError(writer, name, err)
		return
	}
	log.Info().Str("array", name).Str("snapshot", snap.ID.String()).Int("entries", len(snap.Entries)).Msg("created snapshot")
	service.writer.WriteJSONCode(writer, http.StatusCreated, snap)
}

// EndpointGetSnapshots handles the 'GET /v1/arrays/{name}/snapshots?limit={number?:10}' endpoint.
// It responds with the newest snapshots of the array, newest first.
func (service *Service) EndpointGetSnapshots(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")

	limit, validationErr := validation.QueryNumber(request, "limit", false, 10, 1, 100)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	snapshots, err := service.Registry.Snapshots(request.Context(), name, uint64(limit))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, snapshots)
}

// EndpointDeleteSnapshot handles the 'DELETE /v1/arrays/{name}/snapshots/{id}' endpoint
func (service *Service) EndpointDeleteSnapshot(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")
	rawID := chi.URLParam(request, "id")

	id, err := uuid.Parse(rawID)
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrSnapshotNotFound(name, rawID))
		return
	}

	if err := service.Registry.DeleteSnapshot(request.Context(), name, id); err != nil {
		service.writeSnapshotError(writer, name, rawID, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointRestoreSnapshot handles the 'POST /v1/arrays/{name}/restore?snapshot={uuid?}' endpoint.
// The most recent snapshot of the array is restored if no snapshot is given.
func (service *Service) EndpointRestoreSnapshot(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "name")

	id, validationErr := validation.QueryUUID(request, "snapshot", false)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	arr, err := service.Registry.Restore(request.Context(), name, id)
	if err != nil {
		rawID := "latest"
		if id != uuid.Nil {
			rawID = id.String()
		}
		service.writeSnapshotError(writer, name, rawID, err)
		return
	}
	service.writer.WriteJSON(writer, &ArrayInfo{
		Name:     name,
		Size:     arr.Size(),
		Capacity: arr.Capacity(),
	})
}

func (service *Service) writeSnapshotError(writer http.ResponseWriter, name, id string, err error) {
	if errors.Is(err, registry.ErrSnapshotNotFound) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrSnapshotNotFound(name, id))
		return
	}
	service.writer.WriteInternalError(writer, err)
}
