/*
 * Copyright 2025 Onyx Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package hub maintains the live-update websocket connections, partitioned
// into broadcast groups by device-type identifier, and fans newly created
// records out to the owning group.
package hub

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

const (
	// DefaultClientIDPrefix is the naming convention admitted client
	// identifiers must match. It is the station prefix of the test
	// machines that consume live updates.
	DefaultClientIDPrefix = "IE50"

	defaultSendBuffer = 16
)

// Config controls handshake validation and per-connection buffering.
type Config struct {
	// ClientIDPrefix is the required prefix of the clientId handshake
	// parameter. Empty means DefaultClientIDPrefix.
	ClientIDPrefix string `json:"client_id_prefix"`

	// SendBuffer is the per-connection outbound queue length. Broadcasts
	// to a client with a full queue are dropped, not waited for.
	SendBuffer int `json:"send_buffer"`

	CORS models.CORSConfig `json:"-"`
}

func (c *Config) setDefaults() {
	if c.ClientIDPrefix == "" {
		c.ClientIDPrefix = DefaultClientIDPrefix
	}

	if c.SendBuffer <= 0 {
		c.SendBuffer = defaultSendBuffer
	}
}

// GroupKey derives the broadcast-group key for a device-type identifier.
// The type id is used as-is; callers must treat it as already sanitized.
func GroupKey(typeID string) string {
	return "G-" + typeID
}

// Hub owns the connection-to-group registry. It is constructed by the
// server, passed by reference to whoever needs to broadcast, and torn down
// with the server. All methods are safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*client]struct{}

	cfg      Config
	log      logger.Logger
	upgrader websocket.Upgrader
}

// New creates a hub with an empty registry.
func New(cfg Config, log logger.Logger) *Hub {
	cfg.setDefaults()

	h := &Hub{
		groups: make(map[string]map[*client]struct{}),
		cfg:    cfg,
		log:    log.WithComponent("hub"),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.cfg.CORS.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range h.cfg.CORS.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	return false
}

// HandleConnection is the websocket handshake endpoint. The client supplies
// clientId and typeId query parameters; it is either admitted to the group
// for its device type or told why not. A rejected connection is left open
// but inert: it holds no membership and never receives broadcasts.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	typeID := r.URL.Query().Get("typeId")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Msg("Failed to upgrade live-update connection")

		return
	}

	if !strings.HasPrefix(clientID, h.cfg.ClientIDPrefix) {
		h.log.Warn().
			Str("client_id", clientID).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rejected live-update connection: client id does not match required prefix")

		h.reject(conn, "connection not allowed for this machine")

		return
	}

	if typeID == "" {
		h.log.Warn().
			Str("client_id", clientID).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rejected live-update connection: missing device type id")

		h.reject(conn, "device type id required")

		return
	}

	c := &client{
		id:    uuid.NewString(),
		group: GroupKey(typeID),
		conn:  conn,
		send:  make(chan []byte, h.cfg.SendBuffer),
	}

	h.register(c)

	h.log.Info().
		Str("connection_id", c.id).
		Str("client_id", clientID).
		Str("group", c.group).
		Msg("Live-update connection joined group")

	// Confirmation goes to this connection only, never to the group.
	c.trySend(mustMarshal(Message{
		Type:      MessageTypeJoined,
		Group:     c.group,
		Timestamp: time.Now().UTC(),
	}))

	go c.writePump()
	c.readPump(h)
}

// reject sends a rejection notice to a single connection and leaves it to
// drain until the peer closes. The connection never gains membership, so
// later removal is a no-op.
func (h *Hub) reject(conn *websocket.Conn, reason string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, mustMarshal(Message{
		Type:      MessageTypeRejected,
		Error:     reason,
		Timestamp: time.Now().UTC(),
	}))

	go func() {
		defer conn.Close()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[c.group]
	if !ok {
		group = make(map[*client]struct{})
		h.groups[c.group] = group
	}

	group[c] = struct{}{}
}

// unregister removes a client from its group and closes its send channel.
// Removing a client that was never admitted is a no-op.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()

	if group, ok := h.groups[c.group]; ok {
		delete(group, c)

		if len(group) == 0 {
			delete(h.groups, c.group)
		}
	}

	h.mu.Unlock()

	c.closeSend()

	h.log.Debug().
		Str("connection_id", c.id).
		Str("group", c.group).
		Msg("Live-update connection left group")
}

// GroupSize reports the current number of members of a group.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[group])
}

// NotifyRecordCreated fans one new-record event out to every member of the
// group owning the record's device type. The member set is snapshotted
// under the lock and sends happen outside it; a failed or slow member
// never blocks the others, and nothing is reported to the caller.
func (h *Hub) NotifyRecordCreated(typeID string, record any) {
	payload, err := json.Marshal(record)
	if err != nil {
		h.log.Error().
			Err(err).
			Str("type_id", typeID).
			Msg("Failed to serialize record for broadcast")

		return
	}

	group := GroupKey(typeID)

	msg := mustMarshal(Message{
		Type:      MessageTypeNewData,
		Group:     group,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})

	h.mu.RLock()

	members := make([]*client, 0, len(h.groups[group]))
	for c := range h.groups[group] {
		members = append(members, c)
	}

	h.mu.RUnlock()

	dropped := 0

	for _, c := range members {
		if !c.trySend(msg) {
			dropped++
		}
	}

	if dropped > 0 {
		h.log.Warn().
			Str("group", group).
			Int("dropped", dropped).
			Int("members", len(members)).
			Msg("Dropped broadcast for slow or closed connections")
	}
}

// Close tears the registry down, disconnecting every member. Safe to call
// while broadcasts are in flight.
func (h *Hub) Close() {
	h.mu.Lock()

	clients := make([]*client, 0)

	for _, group := range h.groups {
		for c := range group {
			clients = append(clients, c)
		}
	}

	h.groups = make(map[string]map[*client]struct{})

	h.mu.Unlock()

	for _, c := range clients {
		c.closeSend()
	}
}

func mustMarshal(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		// Message has no unmarshalable fields; this cannot happen.
		panic(err)
	}

	return data
}
