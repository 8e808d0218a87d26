package router

import (
	"net/http"

	"quicknote/config/database"
	handlers "quicknote/handler"
	"quicknote/internal/command"
	"quicknote/middleware"
	"quicknote/socket"
)

func Setup(reg *command.Registry, pool *database.Pool, hub *socket.Hub, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// WebSocket
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	// Commands over HTTP
	cmdHandler := handlers.NewCommandHandler(reg, pool)
	mux.HandleFunc("/api/invoke/{command}", cmdHandler.Invoke)
	mux.HandleFunc("/api/commands", cmdHandler.ListCommands)
	mux.HandleFunc("/healthz", cmdHandler.Health)

	return middleware.CORSMiddleware(allowedOrigins)(mux)
}
