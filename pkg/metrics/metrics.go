package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and route.",
		},
		[]string{"method", "route"},
	)

	socketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "oficina",
			Name:      "socket_clients",
			Help:      "Currently connected websocket clients.",
		},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Name:      "events_published_total",
			Help:      "Domain events published on the bus.",
		},
		[]string{"event"},
	)

	appointmentConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Name:      "appointment_conflicts_total",
			Help:      "Appointment writes rejected by the time-slot conflict check.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, socketClients, eventsPublished, appointmentConflicts)
	})
}

// IncHTTP increments the request counter for a method/route pair.
func IncHTTP(method, route string) {
	httpRequests.WithLabelValues(method, route).Inc()
}

// SocketConnected tracks a gained websocket client.
func SocketConnected() { socketClients.Inc() }

// SocketDisconnected tracks a lost websocket client.
func SocketDisconnected() { socketClients.Dec() }

// IncEvent increments the published-events counter for an event type.
func IncEvent(event string) {
	eventsPublished.WithLabelValues(event).Inc()
}

// IncAppointmentConflict counts a rejected double-booking attempt.
func IncAppointmentConflict() { appointmentConflicts.Inc() }
