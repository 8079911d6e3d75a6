package api

import (
	models "PredictPulse/internal/domain/models"
	"PredictPulse/internal/usecase"
	xhttp "PredictPulse/pkg/http"
	xlogger "PredictPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EventsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type EventsEchoHandler struct {
	logger  *xlogger.Logger
	browser *usecase.Browser
	ranker  *usecase.Ranker
	chat    *usecase.Chat
	prefs   *usecase.Prefs
}

func NewEventsEchoHandler(
	logger *xlogger.Logger,
	browser *usecase.Browser,
	ranker *usecase.Ranker,
	chat *usecase.Chat,
	prefs *usecase.Prefs,
) *EventsEchoHandler {
	return &EventsEchoHandler{
		logger:  logger,
		browser: browser,
		ranker:  ranker,
		chat:    chat,
		prefs:   prefs,
	}
}

func (h *EventsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/events", h.Events)
	g.POST("/rank", h.Rank)
	g.POST("/chat", h.Chat)
	g.POST("/preferences/:action", h.Preference)
	g.GET("/preferences", h.Preferences)
}

func (h *EventsEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *EventsEchoHandler) Events(c echo.Context) error {
	req := &models.BrowseRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.browser.Browse(*req)
	return xhttp.ListResponse(c, res.Events, int64(res.Total))
}

func (h *EventsEchoHandler) Rank(c echo.Context) error {
	req := &models.RankRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.ranker.Rank(c.Request().Context(), req.Query, req.TopK)
	if err != nil {
		h.logger.Error("rank usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EventsEchoHandler) Chat(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.chat.Handle(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("chat usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EventsEchoHandler) Preference(c echo.Context) error {
	req := &models.PreferenceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	action := c.Param("action")
	if err := h.prefs.Apply(c.Request().Context(), action, req.UserID, req.EventTicker); err != nil {
		h.logger.Error("preference usecase error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, xhttp.BadRequestErrorf("apply %s: %v", action, err))
	}
	return xhttp.NoContentResponse(c)
}

func (h *EventsEchoHandler) Preferences(c echo.Context) error {
	req := &models.PreferencesQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.prefs.Get(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("preferences usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
