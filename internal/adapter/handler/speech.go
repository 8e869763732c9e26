package handler

import (
	"encoding/base64"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/errors"
	dto "github.com/johnquangdev/call-assistant/internal/adapter/dto/speech"
	"github.com/johnquangdev/call-assistant/pkg/speech"
)

// Speech handles speech conversion and browser token requests
type Speech struct {
	speech *speech.Service
	logger *zap.Logger
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(svc *speech.Service, logger *zap.Logger) *Speech {
	return &Speech{speech: svc, logger: logger}
}

// ToText handles POST /speech/to-text
// @Summary      Speech to text
// @Description  Transcribes base64 encoded audio. Returns a mock transcript when no speech provider is configured.
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        request  body      speech.ToTextRequest  true  "Audio payload"
// @Success      200      {object}  speech.ToTextResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing or malformed audioData"
// @Failure      502      {object}  common.ErrorResponse  "Speech provider failed"
// @Router       /speech/to-text [post]
func (h *Speech) ToText(c echo.Context) error {
	var req dto.ToTextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(sessionIDKey, req.SessionID)

	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	text, err := h.speech.SpeechToText(c.Request().Context(), audio)
	if err != nil {
		return HandleError(h.logger, c, speechError("to-text", err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &dto.ToTextResponse{Text: text})
}

// ToSpeech handles POST /speech/to-speech
// @Summary      Text to speech
// @Description  Synthesizes text and returns base64 encoded audio
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        request  body      speech.ToSpeechRequest  true  "Text payload"
// @Success      200      {object}  speech.ToSpeechResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing text"
// @Failure      502      {object}  common.ErrorResponse  "Speech provider failed"
// @Router       /speech/to-speech [post]
func (h *Speech) ToSpeech(c echo.Context) error {
	var req dto.ToSpeechRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(sessionIDKey, req.SessionID)

	audio, err := h.speech.TextToSpeech(c.Request().Context(), req.Text)
	if err != nil {
		return HandleError(h.logger, c, speechError("to-speech", err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &dto.ToSpeechResponse{
		AudioData: base64.StdEncoding.EncodeToString(audio),
	})
}

// Token handles GET /speech/token
// @Summary      Browser speech token
// @Description  Issues a short-lived speech token, or DEMO_TOKEN when no speech key is configured
// @Tags         Speech
// @Produce      json
// @Success      200  {object}  speech.Token
// @Failure      502  {object}  common.ErrorResponse  "Token issuance failed"
// @Router       /speech/token [get]
func (h *Speech) Token(c echo.Context) error {
	token, err := h.speech.Token(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, speechError("token", err))
	}
	return HandleSuccess(h.logger, c, http.StatusOK, token)
}

// Config handles GET /speech/config
// @Summary      Speech configuration
// @Description  Returns region, language and voice settings for the browser speech SDK
// @Tags         Speech
// @Produce      json
// @Success      200  {object}  speech.Settings
// @Router       /speech/config [get]
func (h *Speech) Config(c echo.Context) error {
	return HandleSuccess(h.logger, c, http.StatusOK, h.speech.Settings())
}

func speechError(op string, err error) error {
	if stdErrors.Is(err, speech.ErrEmptyAudio) {
		return errors.ErrInvalidArgument("audioData must not be empty")
	}
	return errors.ErrSpeechFailed(op, err)
}
