package controller

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/websocket"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	ws "github.com/gorilla/websocket"
)

type WebSocketController struct {
	hub      *websocket.Hub
	upgrader ws.Upgrader
}

func NewWebSocketController(hub *websocket.Hub, cfg *config.AppConfig) *WebSocketController {
	return &WebSocketController{
		hub: hub,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AppCorsAllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// ServeWS godoc
// @Summary      WebSocket Connection
// @Description  Upgrade to a websocket that receives the session's messaging events. Requires the session cookie or X-Session-ID header.
// @Tags         websocket
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /ws [get]
func (c *WebSocketController) ServeWS(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := &websocket.Client{
		Hub:       c.hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: session.ID,
	}

	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
