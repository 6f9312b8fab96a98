package realtime

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Cross-origin requests are filtered by the CORS middleware before the
	// upgrade, so the handshake accepts any origin here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub relays board events between connected clients. It never persists
// anything; REST endpoints own the durable state and clients re-fetch
// after mutations.
type Hub struct {
	cfg       config.RealtimeConfig
	directory Directory
	logger    *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	topics  map[string]map[*Client]struct{}
}

// NewHub creates a hub with the given presence directory
func NewHub(cfg config.RealtimeConfig, directory Directory, logger *zap.Logger) *Hub {
	return &Hub{
		cfg:       cfg,
		directory: directory,
		logger:    logger,
		clients:   make(map[*Client]struct{}),
		topics:    make(map[string]map[*Client]struct{}),
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
// The caller has already authenticated the user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uuid.UUID, name string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, h.cfg.SendBufferSize),
		id:     uuid.New(),
		UserID: userID,
		Name:   name,
		topics: make(map[string]struct{}),
	}

	h.register(client)

	go client.writePump()
	go client.readPump()
	return nil
}

// Directory exposes the presence directory for REST-side lookups
func (h *Hub) Directory() Directory {
	return h.directory
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	if err := h.directory.Set(context.Background(), c.UserID, c.id); err != nil {
		h.logger.Warn("presence directory set failed",
			zap.String("user_id", c.UserID.String()),
			zap.Error(err))
	}
	h.logger.Debug("client connected", zap.String("user_id", c.UserID.String()))
}

// unregister removes the client from every joined topic, announces the
// departure, and releases its directory entry
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	var left []string
	for topic := range c.topics {
		delete(h.topics[topic], c)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
		left = append(left, topic)
	}
	c.topics = make(map[string]struct{})
	close(c.send)
	h.mu.Unlock()

	// the disconnect notice stays scoped to the boards the client had
	// joined; unrelated boards never learn about this user
	disconnected := marshalEnvelope(EventUserDisconnected, map[string]interface{}{
		"userId": c.UserID.String(),
	})
	for _, topic := range left {
		h.broadcast(topic, marshalEnvelope(EventUserLeft, map[string]interface{}{
			"userId":  c.UserID.String(),
			"boardId": strings.TrimPrefix(topic, "board:"),
		}), c)
		h.broadcast(topic, disconnected, c)
	}

	if err := h.directory.Remove(context.Background(), c.UserID, c.id); err != nil {
		h.logger.Warn("presence directory remove failed",
			zap.String("user_id", c.UserID.String()),
			zap.Error(err))
	}
	h.logger.Debug("client disconnected", zap.String("user_id", c.UserID.String()))
}

// joinTopic reports whether the client newly joined; re-joining is a no-op
func (h *Hub) joinTopic(c *Client, topic string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := c.topics[topic]; ok {
		return false
	}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.topics[topic] = struct{}{}
	return true
}

// leaveTopic reports whether the client was a member; leaving twice is a no-op
func (h *Hub) leaveTopic(c *Client, topic string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := c.topics[topic]; !ok {
		return false
	}
	delete(c.topics, topic)
	delete(h.topics[topic], c)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
	return true
}

func (h *Hub) isMember(c *Client, topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := c.topics[topic]
	return ok
}

// broadcast delivers payload to every topic member except the sender
func (h *Hub) broadcast(topic string, payload []byte, except *Client) {
	if payload == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.topics[topic] {
		if client == except {
			continue
		}
		client.enqueue(payload, h.logger)
	}
}

// handleMessage dispatches one inbound envelope from a client
func (h *Hub) handleMessage(c *Client, env Envelope) {
	switch env.Event {
	case EventJoinBoard:
		boardID, ok := boardIDFrom(env.Data)
		if !ok {
			return
		}
		topic := boardTopic(boardID)
		if h.joinTopic(c, topic) {
			h.broadcast(topic, marshalEnvelope(EventUserJoined, map[string]interface{}{
				"userId":  c.UserID.String(),
				"boardId": boardID,
			}), c)
		}

	case EventLeaveBoard:
		boardID, ok := boardIDFrom(env.Data)
		if !ok {
			return
		}
		topic := boardTopic(boardID)
		if h.leaveTopic(c, topic) {
			h.broadcast(topic, marshalEnvelope(EventUserLeft, map[string]interface{}{
				"userId":  c.UserID.String(),
				"boardId": boardID,
			}), c)
		}

	default:
		rule, ok := relayRules[env.Event]
		if !ok {
			h.logger.Debug("unknown realtime event", zap.String("event", env.Event))
			return
		}
		boardID, ok := boardIDFrom(env.Data)
		if !ok {
			return
		}
		topic := boardTopic(boardID)
		// only joined clients may publish into a board topic
		if !h.isMember(c, topic) {
			return
		}
		data := make(map[string]interface{}, len(env.Data)+1)
		for k, v := range env.Data {
			data[k] = v
		}
		data[rule.senderField] = c.UserID.String()
		h.broadcast(topic, marshalEnvelope(rule.outbound, data), c)
	}
}
