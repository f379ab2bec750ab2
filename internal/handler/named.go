package handler

import (
	"errors"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/deppfellow/rental-catalog/internal/service"
	"github.com/labstack/echo/v4"
)

// NamedHandler serves actors or directors.
type NamedHandler[T any] struct {
	Handler
	svc   *service.NamedService[T]
	build func(id int64, name string) T
}

func NewNamedHandler[T any](s *server.Server, svc *service.NamedService[T], build func(id int64, name string) T) *NamedHandler[T] {
	return &NamedHandler[T]{
		Handler: NewHandler(s),
		svc:     svc,
		build:   build,
	}
}

func (h *NamedHandler[T]) List(c echo.Context, _ *ListRequest) ([]T, error) {
	return h.svc.List(c.Request().Context())
}

func (h *NamedHandler[T]) Get(c echo.Context, req *IDRequest) (T, error) {
	return h.svc.Get(c.Request().Context(), req.ID)
}

func (h *NamedHandler[T]) Create(c echo.Context, req *NameRequest) (T, error) {
	return h.svc.Create(c.Request().Context(), h.build(0, req.Name))
}

func (h *NamedHandler[T]) Update(c echo.Context, req *UpdateNameRequest) (UpdateResponse, error) {
	err := h.svc.Update(c.Request().Context(), h.build(req.ID, req.Name))
	if errors.Is(err, errs.ErrNoChange) {
		return UpdateResponse{Updated: false}, nil
	}
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Updated: true}, nil
}

func (h *NamedHandler[T]) Delete(c echo.Context, req *IDRequest) error {
	return h.svc.Delete(c.Request().Context(), h.build(req.ID, ""))
}
