package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one authenticated websocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	id     uuid.UUID
	UserID uuid.UUID
	Name   string

	// joined topics, guarded by hub.mu
	topics map[string]struct{}
}

// enqueue offers a payload to the outbound queue without blocking the hub.
// A client that cannot drain its queue loses messages rather than stalling
// every other connection.
func (c *Client) enqueue(payload []byte, logger *zap.Logger) {
	select {
	case c.send <- payload:
	default:
		logger.Warn("dropping message for slow client",
			zap.String("user_id", c.UserID.String()))
	}
}

// readPump reads inbound envelopes until the connection dies
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed",
					zap.String("user_id", c.UserID.String()),
					zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.hub.logger.Debug("malformed realtime message",
				zap.String("user_id", c.UserID.String()),
				zap.Error(err))
			continue
		}
		c.hub.handleMessage(c, env)
	}
}

// writePump drains the outbound queue and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
