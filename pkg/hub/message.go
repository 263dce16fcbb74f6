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

package hub

import (
	"encoding/json"
	"time"
)

// Message types pushed over the live-update channel.
const (
	// MessageTypeJoined confirms group membership to one connection.
	MessageTypeJoined = "joined"

	// MessageTypeRejected tells one connection its handshake was refused.
	MessageTypeRejected = "rejected"

	// MessageTypeNewData announces a newly created record to a group.
	MessageTypeNewData = "new_data"
)

// Message is the envelope for everything sent over a live-update
// connection.
type Message struct {
	Type      string          `json:"type"`
	Group     string          `json:"group,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
