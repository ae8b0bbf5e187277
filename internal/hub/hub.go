// Package hub maintains one live connection per paired device and fans
// config-changed signals out to them. Signals carry no playlist data; the
// player re-fetches over HTTP, which stays the source of truth, so a dropped
// signal costs latency rather than correctness.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// DefaultHeartbeatTimeout closes a connection whose player stopped sending
// heartbeats.
const DefaultHeartbeatTimeout = 45 * time.Second

// Signal is the single server-to-player event type.
type Signal struct {
	Type      string `json:"type"` // always "config_changed"
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// DeviceStore is the slice of the store the hub writes through: presence
// only, never configuration.
type DeviceStore interface {
	TouchDevice(code string, ip *string, screenWidth, screenHeight *int) error
	SetDeviceOnline(code string, online bool) error
}

// Relay mirrors outbound signals onto a secondary transport (MQTT) for
// players that reach the server through a broker instead of a socket.
type Relay interface {
	Publish(deviceKey string, payload []byte) error
}

// PresenceFunc records liveness out of band (redis TTL key) on every
// heartbeat.
type PresenceFunc func(deviceKey string)

type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn

	store            DeviceStore
	presence         PresenceFunc
	relays           []Relay
	heartbeatTimeout time.Duration
}

type Option func(*Hub)

func WithHeartbeatTimeout(d time.Duration) Option {
	return func(h *Hub) { h.heartbeatTimeout = d }
}

func WithPresence(f PresenceFunc) Option {
	return func(h *Hub) { h.presence = f }
}

func WithRelay(r Relay) Option {
	return func(h *Hub) { h.relays = append(h.relays, r) }
}

func New(store DeviceStore, opts ...Option) *Hub {
	h := &Hub{
		conns:            make(map[string]*conn),
		store:            store,
		heartbeatTimeout: DefaultHeartbeatTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach registers a websocket under a device key and starts its pumps. A
// second connection for the same key replaces the first, which is closed.
func (h *Hub) Attach(deviceKey string, ws *websocket.Conn) {
	c := newConn(h, deviceKey, ws)

	h.mu.Lock()
	old := h.conns[deviceKey]
	h.conns[deviceKey] = c
	h.mu.Unlock()

	if old != nil {
		old.close()
	}

	if err := h.store.SetDeviceOnline(deviceKey, true); err != nil {
		log.Error().Err(err).Str("device_key", deviceKey).Msg("failed to mark device online")
	}
	log.Info().Str("device_key", deviceKey).Msg("device connected")

	go c.writePump()
	go c.readPump()
}

// Disconnect force-closes a device's connection, e.g. when its access code
// is regenerated.
func (h *Hub) Disconnect(deviceKey string) {
	h.mu.RLock()
	c := h.conns[deviceKey]
	h.mu.RUnlock()
	if c != nil {
		c.close()
	}
}

// detach is called by the connection itself once its pumps stop. A connection
// that was already replaced by a newer Attach must not touch the store: the
// device is still online through its replacement.
func (h *Hub) detach(c *conn) {
	h.mu.Lock()
	current := h.conns[c.deviceKey] == c
	if current {
		delete(h.conns, c.deviceKey)
	}
	h.mu.Unlock()

	if !current {
		return
	}

	if err := h.store.SetDeviceOnline(c.deviceKey, false); err != nil {
		log.Error().Err(err).Str("device_key", c.deviceKey).Msg("failed to mark device offline")
	}
	log.Info().Str("device_key", c.deviceKey).Msg("device disconnected")
}

// Notify pushes a config-changed signal to the given device keys. Sends are
// non-blocking: a slow or dead connection has the signal dropped, the
// periodic pull catches it up.
func (h *Hub) Notify(reason string, deviceKeys ...string) {
	payload := marshalSignal(reason)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, key := range deviceKeys {
		if c, ok := h.conns[key]; ok {
			c.send(payload)
		}
		h.relay(key, payload)
	}
}

// Broadcast signals every connected device, used for default-display edits.
func (h *Hub) Broadcast(reason string) {
	payload := marshalSignal(reason)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for key, c := range h.conns {
		c.send(payload)
		h.relay(key, payload)
	}
}

func (h *Hub) relay(deviceKey string, payload []byte) {
	for _, r := range h.relays {
		if err := r.Publish(deviceKey, payload); err != nil {
			log.Warn().Err(err).Str("device_key", deviceKey).Msg("relay publish failed")
		}
	}
}

// Connected reports whether the device currently holds a live connection.
func (h *Hub) Connected(deviceKey string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[deviceKey]
	return ok
}

// ConnectedKeys lists the device keys with live connections.
func (h *Hub) ConnectedKeys() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := make([]string, 0, len(h.conns))
	for key := range h.conns {
		keys = append(keys, key)
	}
	return keys
}

func marshalSignal(reason string) []byte {
	payload, _ := json.Marshal(Signal{
		Type:      "config_changed",
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	})
	return payload
}
