package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusSubscribe(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(EventClientCreated, func(e *Event) { got = append(got, e.Type) })
	bus.Subscribe(EventClientDeleted, func(e *Event) { got = append(got, e.Type) })

	require.NoError(t, bus.PublishJSON(EventClientCreated, map[string]any{"id": 1}))
	require.NoError(t, bus.PublishJSON(EventVehicleCreated, map[string]any{"id": 2}))

	assert.Equal(t, []string{EventClientCreated}, got)
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus()

	var all []string
	bus.SubscribeAll(func(e *Event) { all = append(all, e.Type) })

	require.NoError(t, bus.PublishJSON(EventClientCreated, nil))
	require.NoError(t, bus.PublishJSON(EventPartMoved, nil))

	assert.Equal(t, []string{EventClientCreated, EventPartMoved}, all)
}

func TestBusRoomScoping(t *testing.T) {
	bus := NewBus()

	var room string
	bus.SubscribeAll(func(e *Event) { room = e.Room })

	require.NoError(t, bus.PublishJSONRoom(EventAppointmentCreated, EmployeeRoom(7), map[string]any{"id": 3}))
	assert.Equal(t, "employee-7", room)
}

func TestBusPayloadIsRawJSON(t *testing.T) {
	bus := NewBus()

	var payload json.RawMessage
	bus.SubscribeAll(func(e *Event) { payload = e.Payload })

	require.NoError(t, bus.PublishJSON(EventPartStats, map[string]int{"total": 4}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, 4, decoded["total"])
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	assert.NoError(t, bus.PublishJSON(EventClientCreated, nil))
	bus.Publish(&Event{Type: EventClientCreated})
}
