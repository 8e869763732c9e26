package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/errors"
	"github.com/johnquangdev/call-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/call-assistant/internal/domain/entities"
	"github.com/johnquangdev/call-assistant/pkg/speech"
)

// sessionIDKey is the echo context key handlers set once they know the target session
const sessionIDKey = "session_id"

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes the payload as-is with the given status
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	sessionID, _ := c.Get(sessionIDKey).(string)
	appErr := toAppError(err, sessionID)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if len(appErr.Details) > 0 {
			fields = append(fields, zap.Any("details", appErr.Details))
		}
		if appErr.IsClientError() {
			logger.Warn("http.response.error", fields...)
		} else {
			logger.Error("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	// Raw causes of server-side failures may carry provider responses; keep them in the log only.
	if appErr.IsClientError() {
		body.Details = appErr.Details
		if appErr.Raw != nil {
			body.Info = appErr.Raw.Error()
		}
	}

	return c.JSON(appErr.HTTPCode, body)
}

// Responder adapts HandleError for middleware that cannot import this package
func Responder(logger *zap.Logger) func(c echo.Context, err error) error {
	return func(c echo.Context, err error) error {
		return HandleError(logger, c, err)
	}
}

// toAppError maps domain and provider errors onto the API error catalogue
func toAppError(err error, sessionID string) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		return errors.ErrInvalidPayload(err)
	}

	switch {
	case stdErrors.Is(err, entities.ErrInvalidRequest), stdErrors.Is(err, speech.ErrEmptyAudio):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrSessionNotFound):
		return errors.ErrSessionNotFound(sessionID)
	case stdErrors.Is(err, entities.ErrSessionClosed):
		return errors.ErrSessionClosed(sessionID)
	case stdErrors.Is(err, entities.ErrSessionAlreadyEnded):
		return errors.ErrSessionAlreadyEnded(sessionID)
	case stdErrors.Is(err, entities.ErrSessionBusy):
		return errors.ErrSessionBusy(sessionID)
	default:
		return errors.ErrInternal(err)
	}
}
