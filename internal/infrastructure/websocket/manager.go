package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/pkg/logger"
)

// Client represents one connected device of a signed-in user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and fans out catalog and chat events.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Start runs the manager's main loop in a goroutine until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				// A reconnect replaces the map entry for the user; the old
				// connection's teardown must not touch the replacement.
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Client unregistered: %s", client.UserID)

			case message := <-m.broadcast:
				m.mutex.Lock()
				for _, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(m.clients, client.UserID)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a payload to one user's connection if present.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping websocket payload for slow client %s", userID)
		}
	}
}

type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// BroadcastSnapshot tells every connected client the catalog snapshot was
// replaced. Clients re-query their filtered view; the snapshot itself is not
// pushed, only the signal and the new size.
func (m *Manager) BroadcastSnapshot(listings []*entity.Listing) {
	payload, err := json.Marshal(event{
		Type: "catalog_updated",
		Data: map[string]int{"count": len(listings)},
	})
	if err != nil {
		logger.Error("Failed to encode catalog event: %v", err)
		return
	}

	select {
	case m.broadcast <- payload:
	default:
		logger.Warn("Dropping catalog broadcast, manager busy")
	}
}

// NotifyMessage pushes a freshly stored chat message to its recipient.
func (m *Manager) NotifyMessage(userID string, message *entity.ChatMessage) {
	payload, err := json.Marshal(event{
		Type: "message",
		Data: message,
	})
	if err != nil {
		logger.Error("Failed to encode message event: %v", err)
		return
	}

	m.SendToUser(userID, payload)
}

// ReadPump reads messages from the WebSocket connection.
func (c *Client) ReadPump(m *Manager, onMessage func([]byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read: %v", err)
			}
			break
		}

		if onMessage != nil {
			onMessage(message)
		}
	}
}

// WritePump sends messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}
