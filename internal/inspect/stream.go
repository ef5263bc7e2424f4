package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/toyreact/pkg/vdom"
)

// FlushOp marks the end of the records an event produced.
const FlushOp = "Flush"

// FlushMessage follows the records of one dispatched event.
type FlushMessage struct {
	Op    string     `json:"op"`
	Event string     `json:"event"`
	Node  int        `json:"node"`
	Stats vdom.Stats `json:"stats"`
}

// Stream fans patch records out to websocket clients.
type Stream struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex // serializes Publish; a conn allows one writer
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStream creates a stream accepting origins in allow. An empty list
// accepts every origin.
func NewStream(allow []string, logger *slog.Logger) *Stream {
	allowed := make(map[string]bool, len(allow))
	for _, o := range allow {
		allowed[o] = true
	}
	return &Stream{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the request and keeps the client registered
// until it disconnects.
func (s *Stream) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.logger.Debug("stream client connected", "remote", req.RemoteAddr)

	// Stream is one-way; reads only detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
	s.logger.Debug("stream client disconnected", "remote", req.RemoteAddr)
}

// Publish sends the records of one event followed by its flush message.
func (s *Stream) Publish(records []vdom.Record, flush FlushMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	flush.Op = FlushOp
	for _, rec := range records {
		s.broadcast(rec)
	}
	s.broadcast(flush)
}

// broadcast sends a message to all connected clients.
func (s *Stream) broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encode stream message", "error", err)
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Stream) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close closes all client connections.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
