package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// upgrader accepts any origin; cross-origin policy is left to the CORS
// settings of the HTTP endpoints.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// events streams the session's engine events to a websocket until the client
// disconnects or the session ends.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, err := s.sessions.Get(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	ch, cancel, err := session.Subscribe()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		s.logger.Warn("websocket upgrade failed", "id", id, "error", err)
		return
	}
	defer conn.Close()
	s.logger.Info("event stream opened", "id", id, "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go s.readPump(conn, closed)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
				conn.WriteMessage(websocket.CloseMessage, data) //nolint:errcheck
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("event write failed", "id", id, "error", err)
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			s.logger.Info("event stream closed", "id", id)
			return
		}
	}
}

// readPump discards client messages and closes done when the connection
// fails or the client closes it.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("event stream read failed", "error", err)
			}
			return
		}
	}
}
