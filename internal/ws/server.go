package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// conn is the write surface of a console connection; *websocket.Conn
// satisfies it.
type conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Server upgrades console HTTP connections to WebSockets and parks them in
// the hub until they disconnect.
type Server struct {
	hub          *Hub
	logger       *zap.Logger
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds the ws server.
func NewServer(hub *Hub, pingInterval time.Duration, logger *zap.Logger) *Server {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Server{
		hub:          hub,
		logger:       logger,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is the HTTP handler for the /ws/slots endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	id, events := s.hub.Add()
	s.logger.Info("console connected", zap.Int64("client_id", id))

	go s.writePump(id, c, events)
	go s.readUntilClosed(id, c)
}

// writePump is the single goroutine allowed to write to the connection: it
// drains the console's event channel and owns the ping ticker. It exits
// when the channel is closed by Remove or when a write fails.
func (s *Server) writePump(id int64, c conn, events <-chan SlotEvent) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				c.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = c.WriteMessage(websocket.CloseMessage, []byte{})
				_ = c.Close()
				return
			}
			c.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.WriteJSON(event); err != nil {
				s.drop(id, c, err)
				return
			}
		case <-ticker.C:
			c.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				s.drop(id, c, err)
				return
			}
		}
	}
}

func (s *Server) drop(id int64, c conn, err error) {
	s.logger.Warn("dropping console connection", zap.Int64("client_id", id), zap.Error(err))
	s.hub.Remove(id)
	_ = c.Close()
}

// readUntilClosed discards inbound frames; consoles are receive-only. A
// read error removes the console, which lets the write pump shut the
// connection down.
func (s *Server) readUntilClosed(id int64, c *websocket.Conn) {
	c.SetReadLimit(1024)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			s.hub.Remove(id)
			s.logger.Info("console disconnected", zap.Int64("client_id", id))
			return
		}
	}
}
