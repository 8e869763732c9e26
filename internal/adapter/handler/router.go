package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/johnquangdev/call-assistant/docs"
	"github.com/johnquangdev/call-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/call-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	callHandler   *Call
	speechHandler *Speech
	rateLimit     echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers.
// rateLimit may be nil, in which case no request limit is applied.
func NewRouter(cfg *config.Config, callHandler *Call, speechHandler *Speech, rateLimit echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:           cfg,
		callHandler:   callHandler,
		speechHandler: speechHandler,
		rateLimit:     rateLimit,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	rt.setupCallRoutes(e)
	rt.setupSpeechRoutes(e)

	// Frontend
	if rt.cfg != nil && rt.cfg.Server.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  rt.cfg.Server.StaticDir,
			Index: "index.html",
		}))
	}
}

// middlewares caps request bodies and applies the rate limit to API groups
func (rt *Router) middlewares() []echo.MiddlewareFunc {
	var mws []echo.MiddlewareFunc
	if rt.cfg != nil && rt.cfg.Server.BodyLimit != "" {
		mws = append(mws, middleware.BodyLimit(rt.cfg.Server.BodyLimit))
	}
	if rt.rateLimit != nil {
		mws = append(mws, rt.rateLimit)
	}
	return mws
}

// setupCallRoutes configures call session routes
func (rt *Router) setupCallRoutes(e *echo.Echo) {
	callGroup := e.Group("/call", rt.middlewares()...)

	callGroup.POST("/start", rt.callHandler.StartCall)
	callGroup.POST("/process", rt.callHandler.ProcessCall)
	callGroup.POST("/end", rt.callHandler.EndCall)
	callGroup.GET("/:sessionId", rt.callHandler.GetCall)
}

// setupSpeechRoutes configures speech conversion routes
func (rt *Router) setupSpeechRoutes(e *echo.Echo) {
	speechGroup := e.Group("/speech", rt.middlewares()...)

	speechGroup.POST("/to-text", rt.speechHandler.ToText)
	speechGroup.POST("/to-speech", rt.speechHandler.ToSpeech)
	speechGroup.GET("/token", rt.speechHandler.Token)
	speechGroup.GET("/config", rt.speechHandler.Config)
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{Status: "ok"}
	if rt.cfg != nil {
		resp.Environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, resp)
}
