package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"quicknote/pkg/logger"
)

const (
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The shell's webview origin differs per platform (tauri://, http://localhost).
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	// done is closed by the hub once the client is dropped.
	done chan struct{}
}

// ServeWs upgrades the request and attaches the connection to the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		done: make(chan struct{}),
	}

	select {
	case hub.Register <- client:
	case <-hub.stopped:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.stopped:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	for {
		_, rawMessage, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			logger.Sugar.Errorf("Error unmarshalling message: %v", err)
			continue
		}
		if msg.Type != InvokeType {
			c.reply(WSMessage{Type: ErrorType, ID: msg.ID, Error: "unsupported message type: " + msg.Type})
			continue
		}

		// Invocations are independent; a slow one must not hold up the next.
		go c.invoke(ctx, msg)
	}
}

func (c *Client) invoke(ctx context.Context, msg WSMessage) {
	result, err := c.Hub.registry.Invoke(ctx, msg.Command, msg.Args)
	if err != nil {
		c.reply(WSMessage{Type: ErrorType, ID: msg.ID, Error: err.Error()})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode %s result: %v", msg.Command, err)
		c.reply(WSMessage{Type: ErrorType, ID: msg.ID, Error: err.Error()})
		return
	}
	c.reply(WSMessage{Type: ResultType, ID: msg.ID, Payload: payload})
}

func (c *Client) reply(msg WSMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode reply: %v", err)
		return
	}
	select {
	case c.Send <- b:
	case <-c.done:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Connection is dead
			}
		case <-c.done:
			c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
