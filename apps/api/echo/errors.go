package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

type errorHandler struct {
	logger         core.Logger
	translator     ut.Translator
	signalShutdown func()
}

// newAppHTTPErrorHandler returns an echo.HTTPErrorHandler rendering our errors as JSON.
// signalShutdown is called whenever a core shutdown error reaches it.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	h := &errorHandler{logger: logger, translator: translator, signalShutdown: signalShutdown}
	return h.handle
}

func (h *errorHandler) handle(err error, ctx echo.Context) {
	code, message := h.response(err)
	if code == http.StatusInternalServerError {
		h.serverError(err, ctx)
	}

	if ctx.Echo().Debug {
		message = err.Error()
	} else if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	if ctx.Response().Committed {
		return
	}
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, message)
	}
	if err != nil {
		ctx.Echo().Logger.Error(err)
	}
}

// response maps err to a status code and a body: a string or a field -> message map.
func (h *errorHandler) response(err error) (int, interface{}) {
	cause := errors.Cause(err)
	if cause == user.ErrNotFound {
		return errHttpNotFound.Code, errHttpNotFound.Message
	}

	switch origErr := cause.(type) {
	case *echo.HTTPError:
		// echo reports a missing token as a bad request
		if origErr == middleware.ErrJWTMissing {
			return http.StatusUnauthorized, origErr.Message
		}
		if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
			origErr = herr
		}
		return origErr.Code, origErr.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(h.translator)
		}
		return http.StatusBadRequest, fldErrs
	case *core.ValidationError:
		if origErr.Fields == nil {
			return http.StatusBadRequest, origErr.Error()
		}
		fldErrs := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		return http.StatusBadRequest, fldErrs
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// serverError reports err with the request and the authenticated user, if any.
func (h *errorHandler) serverError(err error, ctx echo.Context) {
	msg := http.StatusText(http.StatusInternalServerError)
	usr, _ := ctx.Get(contextUserKey).(user.User)
	h.logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
		"method": ctx.Request().Method,
		"path":   ctx.Path(),
	}, usr)

	if core.IsShutdown(err) {
		h.signalShutdown()
	}
}
