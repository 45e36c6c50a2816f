package controller

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type SessionController struct {
	sessionService *service.SessionService
	cfg            *config.AppConfig
}

func NewSessionController(sessionService *service.SessionService, cfg *config.AppConfig) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		cfg:            cfg,
	}
}

// Create godoc
// @Summary      Create Session
// @Description  Exchange a marketplace access token for a browser session. The session id is returned in the body and set as an HttpOnly cookie.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body model.CreateSessionRequest true "Create Session Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.SessionResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Router       /api/session [post]
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	session, err := c.sessionService.CreateFromToken(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	setSessionCookie(w, c.cfg, session)
	helper.WriteSuccess(w, service.ToSessionResponse(session))
}

// Get godoc
// @Summary      Current Session
// @Description  Return the session bound to the request
// @Tags         session
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess{data=model.SessionResponse}
// @Failure      401  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/session [get]
func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	helper.WriteSuccess(w, service.ToSessionResponse(session))
}

// Delete godoc
// @Summary      End Session
// @Description  Sign out, drop the session's messaging state and close its websocket connections
// @Tags         session
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      401  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/session [delete]
func (c *SessionController) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	if err := c.sessionService.End(r.Context(), session); err != nil {
		helper.WriteError(w, err)
		return
	}

	clearSessionCookie(w, c.cfg)
	helper.WriteSuccess(w, nil)
}

func setSessionCookie(w http.ResponseWriter, cfg *config.AppConfig, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionTTL()),
		MaxAge:   int(cfg.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg *config.AppConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
