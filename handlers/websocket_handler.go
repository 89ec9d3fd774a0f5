package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/m-kaif07/esport-tournament-website/middleware"
	"github.com/m-kaif07/esport-tournament-website/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub       *realtime.Hub
	jwtSecret string
	logger    *slog.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, jwtSecret string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, jwtSecret: jwtSecret, logger: logger}
}

// ServeTournamentWs subscribes the client to a tournament room. The room is
// public: slot updates carry no sensitive data.
func (h *WebSocketHandler) ServeTournamentWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	h.serve(w, r, realtime.TournamentRoom(tournamentID))
}

// ServeUserWs subscribes the client to its personal room. Browsers cannot
// set headers on websocket handshakes, so the token arrives as a query
// parameter.
func (h *WebSocketHandler) ServeUserWs(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ParseClaims(r.URL.Query().Get("token"), h.jwtSecret)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or missing token")
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}
	userID := int(userIDFloat)

	h.serve(w, r, realtime.UserRoom(userID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Error("websocket upgrade failed",
			slog.String("room", room),
			slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: room,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client registered", slog.String("room", room))
}
