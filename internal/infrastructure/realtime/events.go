package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Envelope is the wire format in both directions
type Envelope struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Control events handled by the hub itself
const (
	EventJoinBoard  = "join:board"
	EventLeaveBoard = "leave:board"
)

// Presence events emitted by the hub
const (
	EventUserJoined       = "user:joined"
	EventUserLeft         = "user:left"
	EventUserDisconnected = "user:disconnected"
)

// relayRule rewrites an inbound intent event into its broadcast form.
// The hub stamps the sender's user ID into senderField so receivers know
// who initiated the change without trusting the payload.
type relayRule struct {
	outbound    string
	senderField string
}

var relayRules = map[string]relayRule{
	"card:move":    {outbound: "card:moved", senderField: "movedBy"},
	"card:update":  {outbound: "card:updated", senderField: "updatedBy"},
	"comment:add":  {outbound: "comment:added", senderField: "addedBy"},
	"list:create":  {outbound: "list:created", senderField: "createdBy"},
	"list:update":  {outbound: "list:updated", senderField: "updatedBy"},
	"list:delete":  {outbound: "list:deleted", senderField: "deletedBy"},
	"typing:start": {outbound: "typing:started", senderField: "userId"},
	"typing:stop":  {outbound: "typing:stopped", senderField: "userId"},
}

// boardTopic names the broadcast topic for one board
func boardTopic(boardID string) string {
	return fmt.Sprintf("board:%s", boardID)
}

// boardIDFrom extracts and validates the boardId field of an inbound payload
func boardIDFrom(data map[string]interface{}) (string, bool) {
	raw, ok := data["boardId"].(string)
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

func marshalEnvelope(event string, data map[string]interface{}) []byte {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil
	}
	return payload
}
