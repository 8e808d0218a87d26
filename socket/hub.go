package socket

import (
	"context"
	"encoding/json"

	"quicknote/internal/command"
	"quicknote/internal/note/model"
	"quicknote/pkg/logger"
)

const (
	InvokeType       = "INVOKE"        // Shell runs a command
	ResultType       = "RESULT"        // Command succeeded
	ErrorType        = "ERROR"         // Command failed
	NotesChangedType = "NOTES_CHANGED" // A note was created, updated or deleted
)

// WSMessage is the envelope for everything sent over the socket. ID echoes
// the INVOKE id on its RESULT or ERROR.
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Hub tracks connected shells. The client set is only touched by Run.
type Hub struct {
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	clients  map[*Client]bool
	registry *command.Registry
	stopped  chan struct{}
}

func NewHub(registry *command.Registry) *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		registry:   registry,
		stopped:    make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.Register:
			h.clients[client] = true
			logger.Sugar.Debugf("Shell connected, %d active", len(h.clients))

		case client := <-h.Unregister:
			h.drop(client)

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; the shell can reconnect and re-list.
					logger.Sugar.Warn("Dropping shell with a full send buffer")
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.done)
}

// NotesChanged queues an event for every connected shell without blocking.
func (h *Hub) NotesChanged(event model.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode change event: %v", err)
		return
	}
	msg, err := json.Marshal(WSMessage{Type: NotesChangedType, Payload: payload})
	if err != nil {
		logger.Sugar.Errorf("Failed to encode change event: %v", err)
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		logger.Sugar.Warnf("Broadcast queue full, dropping %s event for note %d", event.Action, event.ID)
	}
}
