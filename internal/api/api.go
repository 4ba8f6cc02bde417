package api

import (
	"errors"
	"net/http"

	"github.com/skybi/assocarray/internal/api/arrays"
	"github.com/skybi/assocarray/internal/config"
	"github.com/skybi/assocarray/internal/registry"
)

// Service represents the array API service
type Service struct {
	Config   *config.Config
	Registry *registry.Registry
	arrays   *arrays.Service
}

// Startup starts up the array API
func (service *Service) Startup(errs chan<- error) {
	arraysService := &arrays.Service{
		Config:   service.Config,
		Registry: service.Registry,
	}
	service.arrays = arraysService
	go func() {
		if err := arraysService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the array API
func (service *Service) Shutdown() {
	if service.arrays != nil {
		service.arrays.Shutdown()
		service.arrays = nil
	}
}
