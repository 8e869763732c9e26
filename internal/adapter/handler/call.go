package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/errors"
	"github.com/johnquangdev/call-assistant/internal/adapter/dto/call"
	"github.com/johnquangdev/call-assistant/internal/adapter/presenter"
	callUsecase "github.com/johnquangdev/call-assistant/internal/usecase/call"
)

// Call handles call-session HTTP requests
type Call struct {
	callService callUsecase.Service
	logger      *zap.Logger
}

// NewCallHandler creates a new call handler
func NewCallHandler(callService callUsecase.Service, logger *zap.Logger) *Call {
	return &Call{
		callService: callService,
		logger:      logger,
	}
}

// StartCall handles POST /call/start
// @Summary      Start a call
// @Description  Creates a call session and returns the assistant greeting
// @Tags         Call
// @Produce      json
// @Success      200  {object}  call.StartResponse
// @Failure      429  {object}  common.ErrorResponse  "Rate limit exceeded"
// @Failure      500  {object}  common.ErrorResponse  "Failed to create session"
// @Router       /call/start [post]
func (h *Call) StartCall(c echo.Context) error {
	output, err := h.callService.Create(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &call.StartResponse{
		SessionID: output.SessionID,
		Greeting:  output.Greeting,
	})
}

// ProcessCall handles POST /call/process
// @Summary      Process a user utterance
// @Description  Records the user message and returns the assistant reply. Provider failures yield a demo reply.
// @Tags         Call
// @Accept       json
// @Produce      json
// @Param        request  body      call.ProcessRequest  true  "User message"
// @Success      200      {object}  call.ProcessResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing sessionId or userMessage"
// @Failure      404      {object}  common.ErrorResponse  "Unknown session"
// @Failure      409      {object}  common.ErrorResponse  "Session ended or busy"
// @Failure      429      {object}  common.ErrorResponse  "Rate limit exceeded"
// @Router       /call/process [post]
func (h *Call) ProcessCall(c echo.Context) error {
	var req call.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(sessionIDKey, req.SessionID)

	output, err := h.callService.ProcessTurn(c.Request().Context(), req.SessionID, req.UserMessage)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &call.ProcessResponse{
		Response:  output.Response,
		SessionID: output.SessionID,
	})
}

// EndCall handles POST /call/end
// @Summary      End a call
// @Description  Completes the session and returns its metadata with the generated summary
// @Tags         Call
// @Accept       json
// @Produce      json
// @Param        request  body      call.EndRequest  true  "Session to end"
// @Success      200      {object}  call.EndResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing sessionId"
// @Failure      404      {object}  common.ErrorResponse  "Unknown session"
// @Failure      409      {object}  common.ErrorResponse  "Session already ended or busy"
// @Router       /call/end [post]
func (h *Call) EndCall(c echo.Context) error {
	var req call.EndRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(sessionIDKey, req.SessionID)

	session, err := h.callService.End(c.Request().Context(), req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &call.EndResponse{
		Metadata: presenter.ToMetadata(session),
	})
}

// GetCall handles GET /call/:sessionId
// @Summary      Get call details
// @Description  Returns the full session snapshot including transcript and summary
// @Tags         Call
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  call.SessionResponse
// @Failure      404        {object}  common.ErrorResponse  "Unknown session"
// @Router       /call/{sessionId} [get]
func (h *Call) GetCall(c echo.Context) error {
	sessionID := c.Param("sessionId")
	c.Set(sessionIDKey, sessionID)

	session, err := h.callService.Get(c.Request().Context(), sessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSessionResponse(session))
}
