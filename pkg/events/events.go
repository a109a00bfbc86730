// Package events provides the in-process pub/sub bus that decouples the
// services from the socket gateway. Services publish domain events; the hub
// (or any other subscriber) relays them.
package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// EmployeeRoom names the socket room scoped to one employee.
func EmployeeRoom(employeeID uint) string {
	return fmt.Sprintf("employee-%d", employeeID)
}

// Event names follow the <entity>:<verb> convention used on the wire.
const (
	EventAppointmentCreated       = "appointment:created"
	EventAppointmentUpdated       = "appointment:updated"
	EventAppointmentDeleted       = "appointment:deleted"
	EventAppointmentStatusUpdated = "appointment:status-updated"
	EventAppointmentStats         = "appointment:stats"

	EventClientCreated = "client:created"
	EventClientUpdated = "client:updated"
	EventClientDeleted = "client:deleted"

	EventVehicleCreated = "vehicle:created"
	EventVehicleUpdated = "vehicle:updated"
	EventVehicleDeleted = "vehicle:deleted"

	EventOrderCreated  = "order:created"
	EventOrderUpdated  = "order:updated"
	EventOrderDeleted  = "order:deleted"
	EventOrderInvoiced = "order:invoiced"

	EventOrderItemCreated = "order-item:created"
	EventOrderItemUpdated = "order-item:updated"
	EventOrderItemDeleted = "order-item:deleted"

	EventPartCreated = "part:created"
	EventPartUpdated = "part:updated"
	EventPartDeleted = "part:deleted"
	EventPartMoved   = "part:stock-moved"
	EventPartStats   = "part:stats"

	EventFinanceCreated = "finance:created"
	EventFinanceUpdated = "finance:updated"
	EventFinanceDeleted = "finance:deleted"

	EventEmployeeCreated = "employee:created"
	EventEmployeeUpdated = "employee:updated"
	EventEmployeeDeleted = "employee:deleted"

	EventRoleCreated = "role:created"
	EventRoleUpdated = "role:updated"
	EventRoleDeleted = "role:deleted"

	EventUploadCreated = "upload:created"
	EventUploadUpdated = "upload:updated"
	EventUploadDeleted = "upload:deleted"
	EventUploadStats   = "upload:stats"

	EventUserCreated = "user:created"
	EventUserUpdated = "user:updated"
	EventUserDeleted = "user:deleted"
	EventUserStats   = "user:stats"
)

// Event is a lightweight domain event. Room is optional; when set, socket
// subscribers additionally receive the event on that room.
type Event struct {
	Type      string          `json:"event"`
	Room      string          `json:"-"`
	Payload   json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"ts"`
}

// Handler reacts to a published event.
type Handler func(event *Event)

// Bus is a minimal in-process pub/sub. Publish is synchronous; subscribers
// decide their own concurrency model.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	all         []Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every event type. The socket hub uses
// this to mirror all mutations.
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, handler)
}

// Publish notifies subscribers of the event type, then the catch-all set.
func (b *Bus) Publish(event *Event) {
	if b == nil {
		return
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// PublishJSON serializes the payload and publishes it under eventType.
func (b *Bus) PublishJSON(eventType string, payload any) error {
	return b.PublishJSONRoom(eventType, "", payload)
}

// PublishJSONRoom publishes a room-scoped event.
func (b *Bus) PublishJSONRoom(eventType, room string, payload any) error {
	if b == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b.Publish(&Event{Type: eventType, Room: room, Payload: raw, CreatedAt: time.Now()})
	return nil
}
