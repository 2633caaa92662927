package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans activity events out to every open connection of an owner
type Hub struct {
	// ownerID -> connections; an owner may have several tabs open
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	log *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	OwnerID string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	OwnerID string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		log:        log.Named("ws"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.OwnerID] == nil {
				h.conns[conn.OwnerID] = make(map[*Connection]struct{})
			}
			h.conns[conn.OwnerID][conn] = struct{}{}
			n := len(h.conns[conn.OwnerID])
			h.mu.Unlock()
			h.log.Debug("activity feed connected", zap.String("owner_id", conn.OwnerID), zap.Int("connections", n))

		case conn := <-h.unregister:
			h.mu.Lock()
			if owned, ok := h.conns[conn.OwnerID]; ok {
				if _, ok := owned[conn]; ok {
					delete(owned, conn)
					close(conn.Send)
					if len(owned) == 0 {
						delete(h.conns, conn.OwnerID)
					}
					h.log.Debug("activity feed disconnected", zap.String("owner_id", conn.OwnerID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Warn("marshal activity event", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.OwnerID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, owned := range h.conns {
				for conn := range owned {
					close(conn.Send)
				}
			}
			h.conns = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Connections reports how many feeds the owner has open
func (h *Hub) Connections(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[ownerID])
}

// BroadcastToOwner sends an event to every connection of the owner (implements service.Broadcaster)
func (h *Hub) BroadcastToOwner(ownerID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn("marshal activity payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg := &BroadcastMessage{
		OwnerID: ownerID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// Close stops the hub and closes every connection's send channel
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
