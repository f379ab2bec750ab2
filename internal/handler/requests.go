package handler

import (
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/validation"
)

type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

type IDRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

// MovieFields are the scalar columns of a movie.
type MovieFields struct {
	Title       string `json:"title" validate:"required,max=255"`
	Year        int    `json:"year" validate:"gte=0,lte=9999"`
	Length      int    `json:"length" validate:"gte=0"`
	MediaType   string `json:"media_type" validate:"max=64"`
	MediaCover  string `json:"media_cover" validate:"max=1024"`
	MediaOrigin string `json:"media_origin" validate:"max=255"`
	NumOfRents  int    `json:"num_of_rents" validate:"gte=0"`
	IsRented    bool   `json:"is_rented"`
}

func (f MovieFields) movie(id int64) model.Movie {
	return model.Movie{
		ID:          id,
		Title:       f.Title,
		Year:        f.Year,
		Length:      f.Length,
		MediaType:   f.MediaType,
		MediaCover:  f.MediaCover,
		MediaOrigin: f.MediaOrigin,
		NumOfRents:  f.NumOfRents,
		IsRented:    f.IsRented,
	}
}

// CreateMovieRequest names the cast and crew; unknown names are created.
type CreateMovieRequest struct {
	MovieFields
	Actors    []string `json:"actors" validate:"min=1,dive,required,max=255"`
	Directors []string `json:"directors" validate:"min=1,dive,required,max=255"`
}

func (r *CreateMovieRequest) Validate() error { return validation.Struct(r) }

func (r *CreateMovieRequest) toModel() model.Movie {
	m := r.movie(0)
	for _, name := range r.Actors {
		m.Actors = append(m.Actors, model.Actor{Name: name})
	}
	for _, name := range r.Directors {
		m.Directors = append(m.Directors, model.Director{Name: name})
	}
	return m
}

// UpdateMovieRequest replaces the scalar columns. Cast and crew are kept.
// ID comes from the path only; a body "id" is ignored.
type UpdateMovieRequest struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
	MovieFields
}

func (r *UpdateMovieRequest) Validate() error { return validation.Struct(r) }

type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *NameRequest) Validate() error { return validation.Struct(r) }

type UpdateNameRequest struct {
	ID   int64  `param:"id" json:"-" validate:"gt=0"`
	Name string `json:"name" validate:"required,max=255"`
}

func (r *UpdateNameRequest) Validate() error { return validation.Struct(r) }

// UpdateResponse reports whether an update wrote anything.
type UpdateResponse struct {
	Updated bool `json:"updated"`
}
