// Package ws mirrors domain events to websocket clients. Every client
// receives unscoped events; room-scoped events additionally reach clients
// that joined the room.
package ws

import (
	"encoding/json"
	"sync"

	"oficina.app/configs/configslog"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// client is one connected socket and the rooms it joined.
type client struct {
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool
	mu    sync.Mutex
}

func (c *client) inRoom(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms[room]
}

func (c *client) join(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = true
}

func (c *client) leave(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

// Hub fans domain events out to connected sockets.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub builds a hub and subscribes it to every event on the bus.
func NewHub(bus *events.Bus) *Hub {
	h := &Hub{clients: make(map[*client]struct{})}
	bus.SubscribeAll(h.relay)
	return h
}

// frame is the wire format sent to sockets.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// relay forwards one domain event to every eligible client. Slow clients
// are skipped rather than blocking the publisher.
func (h *Hub) relay(event *events.Event) {
	raw, err := json.Marshal(frame{Event: event.Type, Data: event.Payload})
	if err != nil {
		configslog.Log.Warn("Socket frame marshal failed", zap.String("event", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if event.Room != "" && !c.inRoom(event.Room) {
			continue
		}
		select {
		case c.send <- raw:
		default:
		}
	}
}

var pongFrame = []byte(`{"event":"pong"}`)

// handleInbound processes one client message. Clients may join or leave an
// employee room, or ping; anything else is ignored.
func (c *client) handleInbound(raw []byte) {
	var msg frame
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}
	switch msg.Event {
	case "appointment:join-employee":
		var id uint
		if json.Unmarshal(msg.Data, &id) == nil && id != 0 {
			c.join(events.EmployeeRoom(id))
		}
	case "appointment:leave-employee":
		var id uint
		if json.Unmarshal(msg.Data, &id) == nil && id != 0 {
			c.leave(events.EmployeeRoom(id))
		}
	case "ping":
		select {
		case c.send <- pongFrame:
		default:
		}
	}
}

// Handler returns the websocket handler for the /ws route.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		c := &client{
			conn:  conn,
			send:  make(chan []byte, 64),
			rooms: make(map[string]bool),
		}

		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		metrics.SocketConnected()
		configslog.SLog.Infof("Socket client connected (%d online)", h.Count())

		done := make(chan struct{})
		go func() {
			for {
				select {
				case msg := <-c.send:
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			c.handleInbound(raw)
		}

		close(done)
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		metrics.SocketDisconnected()
		configslog.SLog.Infof("Socket client disconnected (%d online)", h.Count())
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
