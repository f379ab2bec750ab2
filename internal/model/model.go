// Package model holds the catalog entities: movies, the actors and
// directors they reference, and the join records linking them.
package model

import (
	"slices"
	"strings"
)

// Actor is a performer. ID 0 means the actor has not been persisted yet.
type Actor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (a Actor) Equal(other Actor) bool {
	return a.ID == other.ID && a.Name == other.Name
}

// Director has the same shape as Actor and is totally ordered by name.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (d Director) Equal(other Director) bool {
	return d.ID == other.ID && d.Name == other.Name
}

// Compare orders directors by name, case-insensitively, breaking ties on
// the exact name and then on ID so the order is total.
func (d Director) Compare(other Director) int {
	if c := strings.Compare(strings.ToLower(d.Name), strings.ToLower(other.Name)); c != 0 {
		return c
	}
	if c := strings.Compare(d.Name, other.Name); c != 0 {
		return c
	}
	switch {
	case d.ID < other.ID:
		return -1
	case d.ID > other.ID:
		return 1
	}
	return 0
}

// Movie is the aggregate root. A persisted movie always has at least one
// actor and one director.
type Movie struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Length      int        `json:"length"`
	MediaType   string     `json:"media_type"`
	MediaCover  string     `json:"media_cover"`
	MediaOrigin string     `json:"media_origin"`
	NumOfRents  int        `json:"num_of_rents"`
	IsRented    bool       `json:"is_rented"`
	Actors      []Actor    `json:"actors"`
	Directors   []Director `json:"directors"`
}

// ScalarEqual compares the columns of the movies row, ignoring the cast and crew.
func (m Movie) ScalarEqual(other Movie) bool {
	return m.ID == other.ID &&
		m.Title == other.Title &&
		m.Year == other.Year &&
		m.Length == other.Length &&
		m.MediaType == other.MediaType &&
		m.MediaCover == other.MediaCover &&
		m.MediaOrigin == other.MediaOrigin &&
		m.NumOfRents == other.NumOfRents &&
		m.IsRented == other.IsRented
}

// Equal compares the full aggregate, with actors and directors in order.
func (m Movie) Equal(other Movie) bool {
	return m.ScalarEqual(other) &&
		slices.EqualFunc(m.Actors, other.Actors, Actor.Equal) &&
		slices.EqualFunc(m.Directors, other.Directors, Director.Equal)
}

// SameDirectors reports whether a and b name the same set of directors,
// regardless of order, ids or letter case. Neither slice is modified.
func SameDirectors(a, b []Director) bool {
	if len(a) != len(b) {
		return false
	}
	left := slices.SortedFunc(slices.Values(a), Director.Compare)
	right := slices.SortedFunc(slices.Values(b), Director.Compare)
	for i := range left {
		if !strings.EqualFold(left[i].Name, right[i].Name) {
			return false
		}
	}
	return true
}

// ActorNames and DirectorNames project the cast and crew onto their names.
func (m Movie) ActorNames() []string {
	names := make([]string, 0, len(m.Actors))
	for _, a := range m.Actors {
		names = append(names, a.Name)
	}
	return names
}

func (m Movie) DirectorNames() []string {
	names := make([]string, 0, len(m.Directors))
	for _, d := range m.Directors {
		names = append(names, d.Name)
	}
	return names
}

// MovieActor links a movie to one of its actors.
type MovieActor struct {
	MovieID int64 `json:"movie_id"`
	ActorID int64 `json:"actor_id"`
}

// MovieDirector links a movie to one of its directors.
type MovieDirector struct {
	MovieID    int64 `json:"movie_id"`
	DirectorID int64 `json:"director_id"`
}
