package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 8
)

// heartbeat is what players send to keep the connection alive; they piggyback
// their address and screen size on it.
type heartbeat struct {
	Type         string  `json:"type"`
	IPAddress    *string `json:"ip_address,omitempty"`
	ScreenWidth  *int    `json:"screen_width,omitempty"`
	ScreenHeight *int    `json:"screen_height,omitempty"`
}

type conn struct {
	hub       *Hub
	deviceKey string
	ws        *websocket.Conn

	outbound  chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

func newConn(h *Hub, deviceKey string, ws *websocket.Conn) *conn {
	return &conn{
		hub:       h,
		deviceKey: deviceKey,
		ws:        ws,
		outbound:  make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
	}
}

// send queues a payload without blocking; a full buffer means the player is
// not draining and the signal is dropped.
func (c *conn) send(payload []byte) {
	select {
	case c.outbound <- payload:
	default:
		log.Warn().Str("device_key", c.deviceKey).Msg("slow connection, dropping signal")
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// readPump consumes player messages. Each heartbeat pushes the read deadline
// forward; a player that misses the timeout is treated as disconnected.
func (c *conn) readPump() {
	defer func() {
		c.close()
		c.hub.detach(c)
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.heartbeatTimeout))

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("device_key", c.deviceKey).Msg("websocket read error")
			}
			return
		}

		var hb heartbeat
		if err := json.Unmarshal(raw, &hb); err != nil || hb.Type != "heartbeat" {
			continue
		}

		_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.heartbeatTimeout))

		if err := c.hub.store.TouchDevice(c.deviceKey, hb.IPAddress, hb.ScreenWidth, hb.ScreenHeight); err != nil {
			log.Error().Err(err).Str("device_key", c.deviceKey).Msg("heartbeat touch failed")
		}
		if c.hub.presence != nil {
			c.hub.presence(c.deviceKey)
		}

		ack, _ := json.Marshal(map[string]string{"type": "heartbeat_ack"})
		c.send(ack)
	}
}

// writePump serializes all writes to the socket.
func (c *conn) writePump() {
	defer c.close()

	for {
		select {
		case payload := <-c.outbound:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
