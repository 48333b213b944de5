package game

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const statusPage = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>HarramBall Server</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
        }
        .container {
            text-align: center;
            background: rgba(0,0,0,0.3);
            padding: 50px;
            border-radius: 20px;
            backdrop-filter: blur(10px);
        }
        h1 { font-size: 48px; margin: 0 0 20px 0; }
        .status { font-size: 24px; margin: 10px 0; }
        .count { color: #4CAF50; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#9917; HARRAMBALL SERVER</h1>
        <div class="status">Server is running</div>
        <div class="status">Active rooms: <span class="count">%d</span></div>
        <div class="status">Total players: <span class="count">%d</span></div>
    </div>
</body>
</html>`

// Handler wires the HTTP edge: the status page, the health probe, and the
// websocket upgrade that spawns a Client per connection.
type Handler struct {
	registry *Registry
	hub      *Hub
	router   *Router
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(registry *Registry, hub *Hub, router *Router, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		hub:      hub,
		router:   router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS middleware in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "handler").Logger(),
	}
}

func (h *Handler) StatusPageHandler(ctx *gin.Context) {
	rooms, players := h.registry.Counts()
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.String(http.StatusOK, fmt.Sprintf(statusPage, rooms, players))
}

func (h *Handler) HealthHandler(ctx *gin.Context) {
	rooms, players := h.registry.Counts()
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"rooms":   rooms,
		"players": players,
	})
}

func (h *Handler) ConnectHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(NewWebsocketSession(conn), h.router, h.hub, h.log)
	h.hub.Register(client)
	h.log.Info().Str("conn", client.ID()).Str("ip", ctx.ClientIP()).Msg("player connected")

	go client.WritePump()
	go client.ReadPump()
}
