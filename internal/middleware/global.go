package middleware

import (
	"errors"
	"net/http"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/deppfellow/rental-catalog/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// statusOf resolves the status the error handler will write for err.
func statusOf(err error) int {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	return errs.ToHTTP(err).Status
}

// RequestLogger writes one "API" line per request. Its level follows the
// final status, which for failed requests is derived from the error since
// the error handler has not written the response yet.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if kind := errs.KindOf(v.Error); kind != errs.Unknown {
				e = e.Str("error_kind", kind.String())
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler renders every error as an errs.HTTPError body.
//
// Repository errors are mapped by kind through errs.ToHTTP, anything
// unclassified goes through sqlerr first. Echo's own errors keep their
// status.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.As(err, &echoErr):
		httpErr = &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: http.StatusText(echoErr.Code),
			Status:  echoErr.Code,
		}
		if echoErr.Code == http.StatusNotFound {
			httpErr = errs.NewNotFoundError("Route not found", false, nil)
		} else if msg, ok := echoErr.Message.(string); ok {
			httpErr.Message = msg
		}
	default:
		httpErr = errs.ToHTTP(sqlerr.HandleError(err))
	}

	logger := *GetLogger(c)
	event := logger.Warn()
	if httpErr.Status >= 500 {
		event = logger.Error().Stack()
	}
	event.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		if err := c.JSON(httpErr.Status, httpErr); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}
