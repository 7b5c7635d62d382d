package stubapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHTTPNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errInvalidResetLink     = echo.NewHTTPError(http.StatusBadRequest, "invalid or expired reset link")
	errMissingTenant        = echo.NewHTTPError(http.StatusBadRequest, "missing school header")
	errUnknownTenant        = echo.NewHTTPError(http.StatusNotFound, "unknown school")
)

// appHTTPErrorHandler maps everything onto the {"message": ...} body shape the
// real backend uses; the front-end surfaces that field verbatim.
func appHTTPErrorHandler(err error, ctx echo.Context) {
	var code int
	var message interface{}

	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if origErr == middleware.ErrJWTMissing {
			code = http.StatusUnauthorized
			message = origErr.Message
			break
		}
		if origErr.Internal != nil {
			if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
				origErr = herr
			}
		}
		code = origErr.Code
		message = origErr.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		if flds := core.TranslateValidationErrors(origErr); len(flds) > 0 {
			message = flds[0].Field + ": " + flds[0].Error
		} else {
			message = http.StatusText(code)
		}
	default:
		code = http.StatusInternalServerError
		message = http.StatusText(code)
	}

	if !ctx.Response().Committed {
		var sendErr error
		if ctx.Request().Method == http.MethodHead {
			sendErr = ctx.NoContent(code)
		} else {
			sendErr = ctx.JSON(code, echo.Map{"message": message})
		}
		if sendErr != nil {
			ctx.Logger().Error(sendErr)
		}
	}
}
