// Package realtime tracks one live WebSocket connection per authenticated
// user and pushes payloads at-most-once, best-effort. The durable record of a
// notification always lives in the store; the registry is never a source of
// truth and its contents are lost on restart.
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Close codes used during the WebSocket handshake.
const (
	CloseInvalidIdentity = 4001
	CloseSetupFailure    = 4002
)

// Conn is the transport surface the registry needs from a connection.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Registry maps user IDs to their single live connection. It is an injected
// dependency of whatever component needs delivery, never ambient state.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Conn
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		clients: make(map[string]Conn),
		logger:  logger,
	}
}

// Register stores the connection for the user. A new connection replaces any
// existing one; the replaced connection is closed.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	old, existed := r.clients[userID]
	r.clients[userID] = conn
	r.mu.Unlock()

	if existed && old != conn {
		old.Close()
		r.logger.Debug("replaced live connection", zap.String("userId", userID))
	}
}

// Unregister removes the user's entry. When conn is non-nil the entry is only
// removed if it still belongs to that connection, so a stale read loop cannot
// evict a replacement connection. No-op if the user has no entry.
func (r *Registry) Unregister(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok {
		return
	}
	if conn != nil && current != conn {
		return
	}
	delete(r.clients, userID)
}

// Deliver writes the payload to the user's connection if one is registered.
// Returns whether a delivery was attempted. Absence of a connection is not an
// error: the receiver picks the notification up from the store on next poll.
func (r *Registry) Deliver(userID string, payload interface{}) bool {
	r.mu.RLock()
	conn, ok := r.clients[userID]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("user not connected, notification stays store-only", zap.String("userId", userID))
		return false
	}

	if err := r.write(conn, payload); err != nil {
		r.logger.Warn("live delivery failed", zap.String("userId", userID), zap.Error(err))
	}
	return true
}

// Broadcast delivers the payload to every registered connection except the
// excluded user.
func (r *Registry) Broadcast(payload interface{}, excludeUserID string) {
	r.mu.RLock()
	targets := make(map[string]Conn, len(r.clients))
	for userID, conn := range r.clients {
		if userID == excludeUserID {
			continue
		}
		targets[userID] = conn
	}
	r.mu.RUnlock()

	for userID, conn := range targets {
		if err := r.write(conn, payload); err != nil {
			r.logger.Warn("broadcast delivery failed", zap.String("userId", userID), zap.Error(err))
		}
	}
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Registry) write(conn Conn, payload interface{}) error {
	return conn.WriteJSON(payload)
}
