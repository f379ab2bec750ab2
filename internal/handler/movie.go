package handler

import (
	"errors"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/deppfellow/rental-catalog/internal/service"
	"github.com/labstack/echo/v4"
)

type MovieHandler struct {
	Handler
	movies *service.MovieService
}

func NewMovieHandler(s *server.Server, movies *service.MovieService) *MovieHandler {
	return &MovieHandler{
		Handler: NewHandler(s),
		movies:  movies,
	}
}

func (h *MovieHandler) List(c echo.Context, _ *ListRequest) ([]model.Movie, error) {
	return h.movies.List(c.Request().Context())
}

func (h *MovieHandler) Get(c echo.Context, req *IDRequest) (model.Movie, error) {
	return h.movies.Get(c.Request().Context(), req.ID)
}

func (h *MovieHandler) Create(c echo.Context, req *CreateMovieRequest) (model.Movie, error) {
	return h.movies.Create(c.Request().Context(), req.toModel())
}

// Update answers {"updated": false} when the stored movie already matches.
func (h *MovieHandler) Update(c echo.Context, req *UpdateMovieRequest) (UpdateResponse, error) {
	err := h.movies.Update(c.Request().Context(), req.movie(req.ID))
	if errors.Is(err, errs.ErrNoChange) {
		return UpdateResponse{Updated: false}, nil
	}
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Updated: true}, nil
}

func (h *MovieHandler) Delete(c echo.Context, req *IDRequest) error {
	return h.movies.Delete(c.Request().Context(), req.ID)
}
