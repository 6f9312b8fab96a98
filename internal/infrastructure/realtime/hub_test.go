package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(config.RealtimeConfig{
		WriteTimeout:   time.Second,
		PongTimeout:    5 * time.Second,
		PingInterval:   4 * time.Second,
		MaxMessageSize: 64 << 10,
		SendBufferSize: 16,
	}, NewInMemoryDirectory(), zap.NewNop())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("uid"))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = hub.ServeWS(w, r, userID, "tester")
	}))
	t.Cleanup(server.Close)
	return hub, server
}

func dialTestHub(t *testing.T, server *httptest.Server, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?uid=" + userID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, event string, data map[string]interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Envelope{Event: event, Data: data}))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "timeout"), "expected read timeout, got %v", err)
}

func TestHub_RelayExcludesSender(t *testing.T) {
	_, server := newTestHub(t)
	boardID := uuid.New().String()

	alice := uuid.New()
	bob := uuid.New()

	aliceConn := dialTestHub(t, server, alice)
	sendEnvelope(t, aliceConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	bobConn := dialTestHub(t, server, bob)
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	// alice sees bob arrive
	joined := readEnvelope(t, aliceConn)
	assert.Equal(t, EventUserJoined, joined.Event)
	assert.Equal(t, bob.String(), joined.Data["userId"])
	assert.Equal(t, boardID, joined.Data["boardId"])

	cardID := uuid.New().String()
	fromList := uuid.New().String()
	toList := uuid.New().String()
	sendEnvelope(t, aliceConn, "card:move", map[string]interface{}{
		"boardId":    boardID,
		"cardId":     cardID,
		"fromListId": fromList,
		"toListId":   toList,
		"position":   2,
	})

	moved := readEnvelope(t, bobConn)
	assert.Equal(t, "card:moved", moved.Event)
	assert.Equal(t, cardID, moved.Data["cardId"])
	assert.Equal(t, fromList, moved.Data["fromListId"])
	assert.Equal(t, toList, moved.Data["toListId"])
	assert.Equal(t, float64(2), moved.Data["position"])
	assert.Equal(t, alice.String(), moved.Data["movedBy"])

	// the sender never hears its own event back
	expectSilence(t, aliceConn)
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	_, server := newTestHub(t)
	boardID := uuid.New().String()

	alice := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, alice, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	bob := uuid.New()
	bobConn := dialTestHub(t, server, bob)
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})
	assert.Equal(t, EventUserJoined, readEnvelope(t, alice).Event)

	// a second join announces nothing
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})
	expectSilence(t, alice)
}

func TestHub_LeaveAnnouncesDeparture(t *testing.T) {
	_, server := newTestHub(t)
	boardID := uuid.New().String()

	alice := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, alice, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	bob := uuid.New()
	bobConn := dialTestHub(t, server, bob)
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})
	assert.Equal(t, EventUserJoined, readEnvelope(t, alice).Event)

	sendEnvelope(t, bobConn, EventLeaveBoard, map[string]interface{}{"boardId": boardID})
	left := readEnvelope(t, alice)
	assert.Equal(t, EventUserLeft, left.Event)
	assert.Equal(t, bob.String(), left.Data["userId"])

	// leaving again announces nothing
	sendEnvelope(t, bobConn, EventLeaveBoard, map[string]interface{}{"boardId": boardID})
	expectSilence(t, alice)

	// after leaving, bob's intents no longer reach the topic
	sendEnvelope(t, bobConn, "typing:start", map[string]interface{}{
		"boardId": boardID,
		"cardId":  uuid.New().String(),
	})
	expectSilence(t, alice)
}

func TestHub_DisconnectCleansUp(t *testing.T) {
	hub, server := newTestHub(t)
	boardID := uuid.New().String()
	ctx := context.Background()

	alice := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, alice, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	bob := uuid.New()
	bobConn := dialTestHub(t, server, bob)
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": boardID})
	assert.Equal(t, EventUserJoined, readEnvelope(t, alice).Event)

	require.Eventually(t, func() bool {
		online, err := hub.Directory().IsUserOnline(ctx, bob)
		return err == nil && online
	}, 2*time.Second, 10*time.Millisecond)

	bobConn.Close()

	left := readEnvelope(t, alice)
	assert.Equal(t, EventUserLeft, left.Event)
	assert.Equal(t, bob.String(), left.Data["userId"])
	assert.Equal(t, boardID, left.Data["boardId"])

	disconnected := readEnvelope(t, alice)
	assert.Equal(t, EventUserDisconnected, disconnected.Event)
	assert.Equal(t, bob.String(), disconnected.Data["userId"])

	require.Eventually(t, func() bool {
		online, err := hub.Directory().IsUserOnline(ctx, bob)
		return err == nil && !online
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DisconnectStaysOnJoinedBoards(t *testing.T) {
	_, server := newTestHub(t)
	sharedBoard := uuid.New().String()
	otherBoard := uuid.New().String()

	alice := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, alice, EventJoinBoard, map[string]interface{}{"boardId": sharedBoard})

	carol := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, carol, EventJoinBoard, map[string]interface{}{"boardId": otherBoard})

	bob := uuid.New()
	bobConn := dialTestHub(t, server, bob)
	sendEnvelope(t, bobConn, EventJoinBoard, map[string]interface{}{"boardId": sharedBoard})
	assert.Equal(t, EventUserJoined, readEnvelope(t, alice).Event)

	bobConn.Close()

	left := readEnvelope(t, alice)
	assert.Equal(t, EventUserLeft, left.Event)
	assert.Equal(t, bob.String(), left.Data["userId"])

	disconnected := readEnvelope(t, alice)
	assert.Equal(t, EventUserDisconnected, disconnected.Event)
	assert.Equal(t, bob.String(), disconnected.Data["userId"])

	// carol shares no board with bob and hears nothing about him
	expectSilence(t, carol)
}

func TestHub_IgnoresMalformedTraffic(t *testing.T) {
	_, server := newTestHub(t)
	boardID := uuid.New().String()

	alice := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, alice, EventJoinBoard, map[string]interface{}{"boardId": boardID})

	bob := dialTestHub(t, server, uuid.New())
	sendEnvelope(t, bob, EventJoinBoard, map[string]interface{}{"boardId": boardID})
	assert.Equal(t, EventUserJoined, readEnvelope(t, alice).Event)

	// unknown event, missing boardId, invalid boardId, broken JSON
	sendEnvelope(t, bob, "card:destroy", map[string]interface{}{"boardId": boardID})
	sendEnvelope(t, bob, "card:move", map[string]interface{}{"cardId": uuid.New().String()})
	sendEnvelope(t, bob, "card:move", map[string]interface{}{"boardId": "not-a-uuid"})
	require.NoError(t, bob.WriteMessage(websocket.TextMessage, []byte("{broken")))

	// bob's connection survives the malformed batch, and delivery to
	// alice is ordered per connection: if any of the malformed messages
	// had produced a broadcast, alice would read it before this one.
	sendEnvelope(t, bob, "typing:start", map[string]interface{}{
		"boardId": boardID,
		"cardId":  uuid.New().String(),
	})
	typing := readEnvelope(t, alice)
	assert.Equal(t, "typing:started", typing.Event)

	expectSilence(t, alice)
}

func TestInMemoryDirectory_LastWriteWins(t *testing.T) {
	d := NewInMemoryDirectory()
	ctx := context.Background()
	userID := uuid.New()
	oldConn := uuid.New()
	newConn := uuid.New()

	require.NoError(t, d.Set(ctx, userID, oldConn))
	require.NoError(t, d.Set(ctx, userID, newConn))

	// the stale connection's removal does not evict the newer one
	require.NoError(t, d.Remove(ctx, userID, oldConn))
	online, err := d.IsUserOnline(ctx, userID)
	require.NoError(t, err)
	assert.True(t, online)

	count, err := d.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, d.Remove(ctx, userID, newConn))
	online, err = d.IsUserOnline(ctx, userID)
	require.NoError(t, err)
	assert.False(t, online)
}
