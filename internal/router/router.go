// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/rental-catalog/internal/handler"
	"github.com/deppfellow/rental-catalog/internal/middleware"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and transaction must exist before the
	// logger is enhanced, and Recover must sit inside the request logger.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerMovieRoutes(v1, h.Movies)
	registerNamedRoutes(v1.Group("/actors"), h.Actors)
	registerNamedRoutes(v1.Group("/directors"), h.Directors)

	return router
}

func registerMovieRoutes(g *echo.Group, h *handler.MovieHandler) {
	movies := g.Group("/movies")
	movies.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &handler.ListRequest{}))
	movies.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &handler.CreateMovieRequest{}))
	movies.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &handler.IDRequest{}))
	movies.PUT("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &handler.UpdateMovieRequest{}))
	movies.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &handler.IDRequest{}))
}

func registerNamedRoutes[T any](g *echo.Group, h *handler.NamedHandler[T]) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &handler.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &handler.NameRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &handler.IDRequest{}))
	g.PUT("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &handler.UpdateNameRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &handler.IDRequest{}))
}
