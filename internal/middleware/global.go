package middleware

import (
	"net/http"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/deppfellow/nutri-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
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

// statusOf returns the status a failed request ends with. The global error
// handler writes the response after the logger and metrics middleware ran,
// so it is derived from the error.
// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// RequestLogger writes one "API" line per request, at a level chosen by status.
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
				statusCode = statusOf(c, v.Error)
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

// kindForStatus classifies Echo's own errors.
func kindForStatus(status int) errs.Kind {
	switch {
	case status == http.StatusNotFound:
		return errs.KindNotFound
	case status == http.StatusMethodNotAllowed:
		return errs.KindMethodNotAllowed
	case status == http.StatusTooManyRequests:
		return errs.KindRateLimited
	case status >= 500:
		return errs.KindInternal
	default:
		return errs.KindValidation
	}
}

// echoMessageKey picks the localized text for Echo's own errors.
func echoMessageKey(status int) string {
	switch {
	case status == http.StatusMethodNotAllowed:
		return i18n.MsgMethodNotAllowed
	case status == http.StatusTooManyRequests:
		return i18n.MsgTooManyRequests
	case status >= 500:
		return i18n.MsgInternalError
	default:
		return i18n.MsgBadRequest
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error is turned into the errs.HTTPError envelope. The original error
// is logged; internal details never reach the client.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	ctx := c.Request().Context()

	var httpErr *errs.HTTPError
	direct := errors.As(err, &httpErr)
	if !direct {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			switch echoErr.Code {
			case http.StatusNotFound:
				httpErr = errs.NewNotFoundError(i18n.FromContext(ctx, i18n.MsgRouteNotFound), false, nil)
			default:
				httpErr = &errs.HTTPError{
					Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
					Kind:    kindForStatus(echoErr.Code),
					Message: i18n.FromContext(ctx, echoMessageKey(echoErr.Code)),
					Status:  echoErr.Code,
				}
			}
		} else {
			// Driver errors that escaped the service layer.
			errors.As(sqlerr.HandleError(err), &httpErr)
		}
	}

	if httpErr == nil {
		httpErr = errs.NewInternalServerError()
	}

	// Services already localize their store errors; every other 5xx gets
	// the generic localized text.
	if httpErr.Status >= http.StatusInternalServerError && !(direct && httpErr.Kind == errs.KindStore) {
		httpErr = httpErr.WithMessage(i18n.FromContext(ctx, i18n.MsgInternalError))
	}

	logger := GetLogger(c)

	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Str("error_kind", string(httpErr.Kind)).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.Status)
			return
		}
		_ = c.JSON(httpErr.Status, errs.HTTPError{
			Code:     httpErr.Code,
			Kind:     httpErr.Kind,
			Message:  httpErr.Message,
			Status:   httpErr.Status,
			Override: httpErr.Override,
			Errors:   httpErr.Errors,
			Action:   httpErr.Action,
		})
	}
}
