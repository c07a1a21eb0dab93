package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live WebSocket connection. Writes are serialized by the
// client's own mutex; gorilla allows one concurrent writer only.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	userID string
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (that *Client) UserID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.userID
}

func (that *Client) setUserID(userID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.userID = userID
}

func (that *Client) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn.WriteJSON(Message{Action: action, Payload: raw})
}

// Hub tracks which connections sit in which room and each user's private
// channel. It implements the coordinator's fanout contract.
type Hub struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	users map[string]*Client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		rooms:  make(map[string]map[*Client]struct{}),
		users:  make(map[string]*Client),
	}
}

// Bind associates the connection with a user id; later messages without an
// explicit id (the chess relay) fall back to it.
func (that *Hub) Bind(client *Client, userID string) {
	if userID == "" {
		return
	}

	client.setUserID(userID)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.users[userID] = client
}

// JoinRoom adds the connection to a room's broadcast set.
func (that *Hub) JoinRoom(client *Client, roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	members, ok := that.rooms[roomID]
	if !ok {
		members = make(map[*Client]struct{})
		that.rooms[roomID] = members
	}

	members[client] = struct{}{}
}

// Drop removes a disconnected client from every room and from the user
// table. The match itself is untouched: no forfeit, no room teardown - the
// remaining participant waits until a reset is issued.
func (that *Hub) Drop(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for roomID, members := range that.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(that.rooms, roomID)
		}
	}

	for userID, existing := range that.users {
		if existing == client {
			delete(that.users, userID)
		}
	}
}

func (that *Hub) ToRoom(roomID, event string, payload any) {
	for _, client := range that.roomMembers(roomID, "") {
		that.deliver(client, event, payload)
	}
}

func (that *Hub) ToRoomExcept(roomID, exceptUserID, event string, payload any) {
	for _, client := range that.roomMembers(roomID, exceptUserID) {
		that.deliver(client, event, payload)
	}
}

func (that *Hub) ToUser(userID, event string, payload any) {
	that.mu.RLock()
	client, ok := that.users[userID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Warn("connection not found for user", "userID", userID)
		return
	}

	that.deliver(client, event, payload)
}

func (that *Hub) roomMembers(roomID, exceptUserID string) []*Client {
	that.mu.RLock()
	defer that.mu.RUnlock()

	members := make([]*Client, 0, len(that.rooms[roomID]))
	for client := range that.rooms[roomID] {
		if exceptUserID != "" && client.UserID() == exceptUserID {
			continue
		}

		members = append(members, client)
	}

	return members
}

func (that *Hub) deliver(client *Client, event string, payload any) {
	if err := client.send(event, payload); err != nil {
		that.logger.Error("failed to send event", "event", event, "error", err)
	}
}
